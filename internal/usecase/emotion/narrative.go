package emotion

import (
	"strings"

	"github.com/emotioncoach/emotion-coach/internal/domain/entities"
)

// DefaultAUThreshold is the mean activation an action unit needs to be described
const DefaultAUThreshold = 0.5

// actionUnitSentences is indexed by action unit position in detector output
var actionUnitSentences = [entities.ActionUnitCount]string{
	"The speaker raises their inner eyebrows. ",
	"The speaker raises their outer eyebrows. ",
	"The speaker lowers their brows. ",
	"The speaker raises their upper eyelid. ",
	"The speaker raises their cheeks. ",
	"The speaker tightens their eyelids. ",
	"The speaker wrinkles their nose. ",
	"The speaker raises their upper lip. ",
	"The speaker deepens the lines around their nose and mouth. ",
	"The speaker pulls the corners of their lips outward. ",
	"The speaker forms dimples. ",
	"The speaker depresses the corners of their lips. ",
	"The speaker raises their chin. ",
	"The speaker stretches their lips. ",
	"The speaker tightens their lips. ",
	"The speaker presses their lips together. ",
	"The speaker parts their lips slightly. ",
	"The speaker lowers their jaw significantly. ",
	"The speaker stretches their neck. ",
	"The speaker closes their eyes completely. ",
}

// DescribeAcoustics renders loudness, pitch, emphasis, flux and spectral shape, in that order
func DescribeAcoustics(f entities.AcousticFeatures) string {
	var sb strings.Builder

	switch {
	case f.Loudness > -30:
		sb.WriteString("The speaker has a loud overall volume. ")
	case f.Loudness > -50:
		sb.WriteString("The speaker has a moderate overall volume. ")
	default:
		sb.WriteString("The speaker has a quiet overall volume. ")
	}

	switch {
	case f.PitchStability > 0.18 && f.PitchStability < 0.5:
		sb.WriteString("The speaker has a moderately stable pitch. ")
	case f.PitchStability <= 0.18:
		sb.WriteString("The speaker has a relatively stable pitch. ")
	default:
		sb.WriteString("The speaker has an unstable pitch. ")
	}

	switch {
	case f.PitchEmphasis > 5:
		sb.WriteString("The speaker emphasizes strongly. ")
	case f.PitchEmphasis <= 2:
		sb.WriteString("The speaker emphasizes moderately. ")
	default:
		sb.WriteString("The speaker emphasizes weakly. ")
	}

	switch {
	case f.SpectralFlux < 0.1:
		sb.WriteString("The audio has a relatively stable frequency content. ")
	case f.SpectralFlux < 0.5:
		sb.WriteString("The audio has a moderately dynamic frequency content. ")
	default:
		sb.WriteString("The audio has a highly dynamic frequency content. ")
	}

	c1, c2, c3, c4 := f.MFCC[0], f.MFCC[1], f.MFCC[2], f.MFCC[3]
	switch {
	case c1 > c2 && c3 > c4:
		sb.WriteString("The audio has a dominant spectral peak in the lower frequencies. ")
	case c2 > c1 && c3 > c4:
		sb.WriteString("The audio has it's energy distributed across various frequencies, with a slight emphasis on the lower-mid frequencies. ")
	case c3 > c1 && c3 > c2:
		sb.WriteString("The audio has it's energy distributed across various frequencies, with a potential emphasis on the higher frequencies. ")
	default:
		sb.WriteString("The audio has a less distinct spectral distribution pattern. ")
	}

	return sb.String()
}

// DescribeActionUnits emits one sentence per unit whose mean activation reaches threshold, in unit order
func DescribeActionUnits(mean []float64, threshold float64) string {
	var sb strings.Builder
	for i, v := range mean {
		if i >= len(actionUnitSentences) {
			break
		}
		if v >= threshold {
			sb.WriteString(actionUnitSentences[i])
		}
	}
	return sb.String()
}

// ActiveActionUnits returns the indices DescribeActionUnits would describe
func ActiveActionUnits(mean []float64, threshold float64) []int {
	var active []int
	for i, v := range mean {
		if i < entities.ActionUnitCount && v >= threshold {
			active = append(active, i)
		}
	}
	return active
}

// ClassifierInput builds the text the sentiment model was fine-tuned on.
// An absent narrative is rendered as the empty string.
func ClassifierInput(audio, facial string) string {
	return "audio: " + audio + "facial: " + facial + "<|endoftext|>"
}
