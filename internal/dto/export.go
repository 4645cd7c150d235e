package dto

// CoverageSheetRequest asks for a daily coverage sheet rendition.
type CoverageSheetRequest struct {
	Date   string `json:"date" validate:"required"`
	Format string `json:"format" validate:"required,oneof=csv pdf"`
}

// CoverageSheetStatus reports where an enqueued sheet will land.
type CoverageSheetStatus struct {
	Date     string `json:"date"`
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Ready    bool   `json:"ready"`
}
