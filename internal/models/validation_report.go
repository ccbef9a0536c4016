package models

// Accuracy holds point-error metrics
type Accuracy struct {
	MAE                 float64 `json:"mae"`
	RMSE                float64 `json:"rmse"`
	MAPE                float64 `json:"mape"`
	DirectionalAccuracy float64 `json:"directional_accuracy"`
}

// Bias describes systematic over- or under-prediction
type Bias struct {
	MeanError float64 `json:"mean_error"`
	Magnitude string  `json:"magnitude"`
	Direction string  `json:"direction"`
}

// ReliabilityBucket compares predicted and observed frequency in one
// probability band
type ReliabilityBucket struct {
	Lower             float64 `json:"lower"`
	Upper             float64 `json:"upper"`
	Count             int     `json:"count"`
	MeanPredicted     float64 `json:"mean_predicted"`
	ObservedFrequency float64 `json:"observed_frequency"`
}

// Calibration summarizes how close predictions land to actuals
type Calibration struct {
	WithinTenPercent    float64             `json:"within_10_percent"`
	WithinTwentyPercent float64             `json:"within_20_percent"`
	BrierScore          *float64            `json:"brier_score,omitempty"`
	Reliability         []ReliabilityBucket `json:"reliability,omitempty"`
}

// WindowScore is the accuracy of one sliding window
type WindowScore struct {
	Start    int     `json:"start"`
	End      int     `json:"end"`
	MAE      float64 `json:"mae"`
	Accuracy float64 `json:"accuracy"`
}

// TemporalStability tracks accuracy drift over time
type TemporalStability struct {
	Windows        []WindowScore `json:"windows"`
	Slope          float64       `json:"slope"`
	Trend          string        `json:"trend"`
	StabilityScore float64       `json:"stability_score"`
}

// ValidationReport is the model validator output
type ValidationReport struct {
	SampleSize        int               `json:"sample_size"`
	Accuracy          Accuracy          `json:"accuracy"`
	Bias              Bias              `json:"bias"`
	Calibration       Calibration       `json:"calibration"`
	TemporalStability TemporalStability `json:"temporal_stability"`
	Status            Status            `json:"status"`
	Error             string            `json:"error,omitempty"`
}
