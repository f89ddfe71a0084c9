package ui

import "github.com/AllenDang/cimgui-go/imgui"

// ImGuiControls draws panel widgets with ImGui.
type ImGuiControls struct{}

// SliderFloat draws a float slider.
func (ImGuiControls) SliderFloat(label string, value *float32, min, max float32) bool {
	return imgui.SliderFloatV(label, value, min, max, "%.2f", imgui.SliderFlagsNone)
}

// SliderInt draws an integer slider.
func (ImGuiControls) SliderInt(label string, value *int32, min, max int32) bool {
	return imgui.SliderIntV(label, value, min, max, "%d", imgui.SliderFlagsNone)
}

// Button draws a button.
func (ImGuiControls) Button(label string) bool {
	return imgui.Button(label)
}

// Text draws a line of text.
func (ImGuiControls) Text(text string) {
	imgui.TextDisabled(text)
}
