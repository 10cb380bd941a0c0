package record

import "fmt"

// Codepage identifies the character encoding of the file's strings, carried
// in the POI file header.
type Codepage uint16

const (
	CodepageThai               Codepage = 0x036A
	CodepageChineseTraditional Codepage = 0x03B6
	CodepageCentralEuropean    Codepage = 0x04E2
	CodepageCyrillic           Codepage = 0x04E3
	CodepageWesternEuropean    Codepage = 0x04E4
	CodepageUnicode            Codepage = 0xFDE9
)

// String returns the codepage name, or the numeric code for values outside
// the documented set.
func (c Codepage) String() string {
	switch c {
	case CodepageThai:
		return "Thai"
	case CodepageChineseTraditional:
		return "ChineseTraditional"
	case CodepageCentralEuropean:
		return "CentralEuropean"
	case CodepageCyrillic:
		return "Cyrillic"
	case CodepageWesternEuropean:
		return "WesternEuropean"
	case CodepageUnicode:
		return "Unicode"
	}
	return fmt.Sprintf("Codepage(0x%04X)", uint16(c))
}

// AlertTrigger selects how an alert fires relative to the waypoint.
type AlertTrigger uint8

const (
	TriggerProximity AlertTrigger = 0
	// Values 1 and 2 have both been observed for along-road alerts.
	TriggerAlongRoad  AlertTrigger = 1
	TriggerAlongRoad2 AlertTrigger = 2
	TriggerTourGuide  AlertTrigger = 3
)

// AlertSource selects how the alert's id byte is interpreted.
type AlertSource uint8

const (
	SourceSymbol   AlertSource = 0x00
	SourceInternal AlertSource = 0x10
	SourceMedia    AlertSource = 0x20
)

// AudioClip identifies one of the device's built-in alert sounds.
type AudioClip uint8

const (
	ClipBeep AudioClip = iota
	ClipTone
	ClipTripleBeep
	ClipSilence
	ClipPlonk
	ClipDoublePlonk
)

// AudioFormat identifies the container of an embedded audio blob.
type AudioFormat uint8

const (
	AudioWAV AudioFormat = 0
	AudioMP3 AudioFormat = 1
)

// Region identifies the sales region a product record targets. 0xFF has been
// observed meaning the same as None.
type Region uint8

const (
	RegionNone Region = iota
	RegionUnitedKingdomIreland
	RegionNetherlands
	RegionFrance
	RegionBelgiumLuxemburg
	RegionAustraliaNewZealand
	RegionSpainPortugal
	RegionItalySlovenia
	RegionAustriaGermany
	RegionNordics
	RegionEasternEurope
	RegionGreece
	RegionNorthAmerica
	RegionRussia
	RegionSouthAfrica
	RegionMiddleEast

	RegionAlsoNone Region = 0xFF
)
