package main

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/raging-sea/internal/panel"
	"github.com/Faultbox/raging-sea/internal/sea"
)

// renderPanel draws the debug panel in the top-right corner.
func (app *App) renderPanel(workPos, workSize imgui.Vec2) {
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoSavedSettings

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+workSize.X-panel.Width, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(panel.Width, 0))
	imgui.SetNextWindowBgAlpha(0.9)
	if imgui.BeginV("Controls", nil, flags) {
		app.renderActions()
		imgui.Separator()

		for _, folder := range app.panel.Folders() {
			// Folders start closed
			if !imgui.CollapsingHeaderTreeNodeFlagsV(folder, imgui.TreeNodeFlagsNone) {
				continue
			}
			imgui.PushItemWidth(panel.Width * 0.5)
			for _, c := range app.panel.InFolder(folder) {
				app.renderControl(c)
			}
			imgui.PopItemWidth()
		}

		app.renderAudio()
	}
	imgui.End()
}

func (app *App) renderActions() {
	if imgui.Button("Open model...") {
		app.openModelDialog()
	}
	imgui.SameLine()
	if imgui.Button("Save settings") {
		app.saveSettings()
	}
	imgui.SameLine()
	if imgui.Button("Reset") {
		app.session.ResetSettings()
		app.notify("Settings reset")
	}
	if imgui.Button("Screenshot (F12)") {
		app.captureScreenshot()
	}
	imgui.SameLine()
	imgui.Checkbox("Stats (F3)", &app.showStats)
	imgui.TextDisabled("Drag to orbit, scroll to zoom, F1 hides panel")
}

// renderControl draws one control. The widget edits a copy; Set clamps
// it and writes through the controller.
func (app *App) renderControl(c *panel.Control) {
	settings := app.panel.Settings()
	ctrl := app.panel.Controller()

	switch c.Kind {
	case panel.KindFloat:
		v := float32(c.Value(settings))
		if imgui.SliderFloatV(c.Name, &v, float32(c.Min), float32(c.Max), "%.3f", imgui.SliderFlagsAlwaysClamp) {
			c.Set(ctrl, float64(v))
		}
	case panel.KindInt:
		v := int32(c.Value(settings))
		if imgui.SliderIntV(c.Name, &v, int32(c.Min), int32(c.Max), "%d", imgui.SliderFlagsAlwaysClamp) {
			c.Set(ctrl, float64(v))
		}
	case panel.KindColor:
		col := c.Color(settings).Array()
		if imgui.ColorEdit3V(c.Name, &col, imgui.ColorEditFlagsDisplayHex) {
			c.SetColor(ctrl, sea.FromArray(col))
		}
	}
}

func (app *App) renderAudio() {
	m := app.session.Audio
	if m == nil {
		return
	}
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Audio", imgui.TreeNodeFlagsNone) {
		return
	}
	vol := float32(m.Volume())
	if imgui.SliderFloatV("volume", &vol, 0, 1, "%.2f", imgui.SliderFlagsAlwaysClamp) {
		app.session.SetVolume(float64(vol))
	}
	muted := m.Muted()
	if imgui.Checkbox("muted", &muted) {
		app.session.SetMuted(muted)
	}
}
