package shotloader

import "fmt"

// Group identifies one of the fixed magnetics diagnostic groups.
type Group string

const (
	GroupFluxLoops Group = "FluxLoops"
	GroupBDots     Group = "BDots"
	GroupCurrents  Group = "Currents"
)

// Policy selects the calibration rule applied to a channel. The set is
// closed: every processed channel goes through exactly one of these.
type Policy int

const (
	PolicyFluxLoop Policy = iota
	PolicyBDot
	PolicyCurrent
)

func (p Policy) String() string {
	switch p {
	case PolicyFluxLoop:
		return "FluxLoop"
	case PolicyBDot:
		return "BDot"
	case PolicyCurrent:
		return "Current"
	default:
		return "Unknown"
	}
}

// IpSourceChannel is the Rogowski coil integrated into the plasma current.
const IpSourceChannel = "PlasmaRogB"

// IpChannel is the derived plasma current channel.
const IpChannel = "Ip"

// Channel lists per group, fixed by the machine configuration. No channel
// appears in more than one group.
var (
	FluxLoopChannels = fluxLoopList()
	BDotChannels     = bdotList()
	CurrentChannels  = []string{
		"PlasmaRogA",
		IpSourceChannel,
		"RT_DPWMi_EF123",
		"RT_DPWMi_EF45",
		"RT_DPWMi_EF678",
		"RT_DPWMi_TF",
	}
)

func fluxLoopList() []string {
	names := numbered("CFL", 13)
	names = append(names, "DiamagA", "DiamagB", "DiamagC")
	names = append(names, numbered("NCFL", 20)...)
	names = append(names, numbered("WFL", 16)...)
	return names
}

func bdotList() []string {
	names := numbered("PDX", 13)
	for i := 1; i <= 6; i++ {
		names = append(names, fmt.Sprintf("OTor%d", i))
	}
	for i := 1; i <= 6; i++ {
		names = append(names, fmt.Sprintf("CTor%d", i))
	}
	names = append(names, numbered("CPA", 21)...)
	return names
}

func numbered(prefix string, count int) []string {
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("%s%02d", prefix, i+1)
	}
	return names
}
