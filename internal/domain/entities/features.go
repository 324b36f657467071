package entities

// Column names of the opensmile eGeMAPS functionals we read
const (
	FeatureLoudness       = "equivalentSoundLevel_dBp"
	FeaturePitchStability = "F0semitoneFrom27.5Hz_sma3nz_stddevNorm"
	FeaturePitchEmphasis  = "F0semitoneFrom27.5Hz_sma3nz_pctlrange0-2"
	FeatureSpectralFlux   = "spectralFlux_sma3_amean"
	FeatureMFCC1          = "mfcc1_sma3_amean"
	FeatureMFCC2          = "mfcc2_sma3_amean"
	FeatureMFCC3          = "mfcc3_sma3_amean"
	FeatureMFCC4          = "mfcc4_sma3_amean"
)

// ActionUnitCount is the number of facial action units the detector reports
const ActionUnitCount = 20

// AcousticFeatures is the fixed set of measures the audio narrative is built from
type AcousticFeatures struct {
	Loudness       float64    `json:"loudness"`
	PitchStability float64    `json:"pitch_stability"`
	PitchEmphasis  float64    `json:"pitch_emphasis"`
	SpectralFlux   float64    `json:"spectral_flux"`
	MFCC           [4]float64 `json:"mfcc"`
}

// AcousticFeaturesFromColumns picks the measures out of a full functionals row
func AcousticFeaturesFromColumns(cols map[string]float64) (AcousticFeatures, error) {
	required := []string{
		FeatureLoudness,
		FeaturePitchStability,
		FeaturePitchEmphasis,
		FeatureSpectralFlux,
		FeatureMFCC1,
		FeatureMFCC2,
		FeatureMFCC3,
		FeatureMFCC4,
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return AcousticFeatures{}, &MissingFeatureError{Name: name}
		}
	}

	return AcousticFeatures{
		Loudness:       cols[FeatureLoudness],
		PitchStability: cols[FeaturePitchStability],
		PitchEmphasis:  cols[FeaturePitchEmphasis],
		SpectralFlux:   cols[FeatureSpectralFlux],
		MFCC: [4]float64{
			cols[FeatureMFCC1],
			cols[FeatureMFCC2],
			cols[FeatureMFCC3],
			cols[FeatureMFCC4],
		},
	}, nil
}

// MeanActionUnits averages per-frame activations element-wise.
// Frames shorter than ActionUnitCount contribute zero for the missing units.
func MeanActionUnits(frames [][]float64) ([]float64, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	mean := make([]float64, ActionUnitCount)
	for _, frame := range frames {
		for i := 0; i < ActionUnitCount && i < len(frame); i++ {
			mean[i] += frame[i]
		}
	}
	n := float64(len(frames))
	for i := range mean {
		mean[i] /= n
	}
	return mean, nil
}
