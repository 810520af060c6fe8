package mousecamera

import (
	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/tool"
	"github.com/go-gl/mathgl/mgl64"
)

func (t *mouseCameraTool) Display(ctx *tool.DisplayContext) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lease == nil || ctx.Lines == nil {
		return
	}

	ownWindow := ctx.WindowIndex == t.lease.WindowIndex()
	drawCenter := t.config.ShowScreenCenter && t.mode.Kind() != ModeIdle && ownWindow
	drawFrustum := t.config.ShowFrustum && !ownWindow
	if !drawCenter && !drawFrustum {
		return
	}

	env := t.factory.manager.Environment()
	scr := t.lease.Screen()
	screenT := scr.Transform()
	sw, sh := scr.Size()
	toPhys := func(p mgl64.Vec3) mgl64.Vec3 { return screenT.TransformPoint(p) }

	if drawCenter {
		// wide background pass under a thin foreground pass
		for _, pass := range []struct {
			color common.Color
			width float32
		}{{env.BackgroundColor(), 3}, {env.ForegroundColor(), 1}} {
			ctx.Lines.Add(toPhys(mgl64.Vec3{0, sh * 0.5, 0}), toPhys(mgl64.Vec3{sw, sh * 0.5, 0}), pass.color, pass.width)
			ctx.Lines.Add(toPhys(mgl64.Vec3{sw * 0.5, 0, 0}), toPhys(mgl64.Vec3{sw * 0.5, sh, 0}), pass.color, pass.width)
		}
	}

	if drawFrustum {
		eye := screenT.InverseTransformPoint(t.lease.Viewer().HeadPosition())
		f := common.NewScreenFrustum(eye, sw, sh, env.FrontPlaneDist(), env.BackPlaneDist())
		fg := env.ForegroundColor()
		var front, face, back [4]mgl64.Vec3
		for i := range 4 {
			front[i] = toPhys(f.Front[i])
			face[i] = toPhys(f.Screen[i])
			back[i] = toPhys(f.Back[i])
		}
		ctx.Lines.AddLoop(front[:], fg, 1)
		ctx.Lines.AddLoop(face[:], fg, 1)
		ctx.Lines.AddLoop(back[:], fg, 1)
		eyePhys := toPhys(f.Eye)
		for i := range 4 {
			ctx.Lines.Add(eyePhys, back[i], fg, 1)
		}
		ctx.Lines.Add(eyePhys, toPhys(f.Center), fg, 1)
	}
}
