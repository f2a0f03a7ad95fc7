package deepgram

type deepgramVoice string

const defaultVoice = VoiceThalia

// Aura voice models available for synthesis.
const (
	VoiceThalia  deepgramVoice = "aura-2-thalia-en"
	VoiceAsteria deepgramVoice = "aura-2-asteria-en"
	VoiceLuna    deepgramVoice = "aura-2-luna-en"
	VoiceAthena  deepgramVoice = "aura-2-athena-en"
	VoiceHera    deepgramVoice = "aura-2-hera-en"
	VoiceOrion   deepgramVoice = "aura-2-orion-en"
	VoiceArcas   deepgramVoice = "aura-2-arcas-en"
	VoiceZeus    deepgramVoice = "aura-2-zeus-en"
)

func GetAvailableVoices() []deepgramVoice {
	return []deepgramVoice{
		VoiceThalia,
		VoiceAsteria,
		VoiceLuna,
		VoiceAthena,
		VoiceHera,
		VoiceOrion,
		VoiceArcas,
		VoiceZeus,
	}
}
