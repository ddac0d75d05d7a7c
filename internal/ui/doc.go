// Package ui implements an interactive terminal form using bubbletea's Elm architecture.
//
// The form collects playlist metadata (title, description, privacy) before a
// build starts, pre-filled from configuration defaults. It is a boundary-layer
// input collector: the values it returns are handed to the build engine the
// same way flag values are, so the pipeline itself never prompts.
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Keyboard navigation uses tab/shift+tab between fields, left/right to cycle
// privacy, enter to confirm, and esc/ctrl+c to cancel, with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
