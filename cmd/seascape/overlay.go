package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/raging-sea/internal/panel"
	"github.com/Faultbox/raging-sea/internal/sea"
)

// renderStats draws frame timing and scene state in the top-left corner.
func (app *App) renderStats(workPos imgui.Vec2) {
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+10, workPos.Y+10))
	imgui.SetNextWindowSize(imgui.NewVec2(250, 0)) // Auto height

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(8, 8))
	imgui.SetNextWindowBgAlpha(0.6)

	if imgui.BeginV("##Stats", nil, flags) {
		fps := app.stats.FPS()
		fpsColor := imgui.NewVec4(0, 1, 0, 1)
		if fps < 30 {
			fpsColor = imgui.NewVec4(1, 0, 0, 1)
		} else if fps < 55 {
			fpsColor = imgui.NewVec4(1, 1, 0, 1)
		}
		imgui.TextColored(fpsColor, fmt.Sprintf("FPS: %.1f (%.2f ms)", fps, app.stats.FrameTime()))

		loop := app.session.Loop
		imgui.Text(fmt.Sprintf("Time: %.2f s", loop.Elapsed()))
		imgui.Text("Object: " + panel.ObjectStatus(loop))
		if st, ok := loop.Scene().Object.(sea.Loaded); ok {
			e := st.Object.Extent
			imgui.Text(fmt.Sprintf("Extent: %.2f x %.2f x %.2f", e.X, e.Y, e.Z))
		}

		rs := app.renderer.Stats()
		imgui.Text(fmt.Sprintf("Draws: %d  Tris: %d", rs.DrawCalls, rs.Triangles))
		imgui.Text(fmt.Sprintf("Target: %dx%d", rs.Width, rs.Height))
		imgui.Text(fmt.Sprintf("Heap: %.1f MB", app.stats.HeapMB()))

		if app.frameErr != nil {
			imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), app.frameErr.Error())
		}
	}
	imgui.End()
	imgui.PopStyleVar()
}
