package configuration

// CurveRule maps every temperature below Temp to Duty, see curves.TempToDuty
type CurveRule struct {
	Temp float64 `json:"temp" mapstructure:"temp"`
	Duty int     `json:"duty" mapstructure:"duty"`
}

func DefaultCurve() []CurveRule {
	return []CurveRule{
		{Temp: 45, Duty: 0},
		{Temp: 50, Duty: 10},
		{Temp: 55, Duty: 30},
		{Temp: 60, Duty: 80},
		{Temp: 65, Duty: 100},
	}
}
