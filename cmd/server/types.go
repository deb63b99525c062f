package main

type ConvertRequest struct {
	Template string `json:"template"`
	From     string `json:"from"`
	To       string `json:"to"`
}

type ConvertResponse struct {
	ID       string `json:"id"`
	Format   string `json:"format"`
	Template string `json:"template"`
	Elapsed  string `json:"elapsed"`
}

type InspectRequest struct {
	Template string `json:"template"`
	Format   string `json:"format"`
}

type InspectResponse struct {
	ID           string           `json:"id"`
	Width        int              `json:"width"`
	Height       int              `json:"height"`
	Dpi          int              `json:"dpi"`
	Pattern      string           `json:"pattern"`
	MinutiaCount int              `json:"minutia_count"`
	Minutiae     []MinutiaInfo    `json:"minutiae"`
	RidgeCounts  []RidgeCountInfo `json:"ridge_counts,omitempty"`
}

type MinutiaInfo struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction int    `json:"direction"`
	Type      string `json:"type"`
	Quality   int    `json:"quality,omitempty"`
}

type RidgeCountInfo struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Count int `json:"count"`
}

type ImageInspectRequest struct {
	Image string `json:"image"`
}

type ImageInspectResponse struct {
	ID     string `json:"id"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Usable bool   `json:"usable"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
