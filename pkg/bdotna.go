package shotloader

// defaultBdotNA gives 1/NA for each B-dot probe by name. Values reflect
// the Pegasus-III coil calibrations as of July 2023.
var defaultBdotNA = map[string]float64{
	"PDX01": 31.40986856, "PDX02": 30.61780031,
	"PDX03": 30.83447292, "PDX04": 30.18429813,
	"PDX05": 29.80654102, "PDX06": 31.5045286,
	"PDX07": 29.94459065, "PDX08": 30.03320686,
	"PDX09": 30.94971522, "PDX10": 31.56406303,
	"PDX11": 30.99254654, "PDX12": 29.48266806,
	"PDX13": 31.41396525, "OTor1": 51.43020212,
	"OTor2": 53.77402821, "OTor3": 53.68001112,
	"OTor4": 50.42248514, "OTor5": 52.05609586,
	"OTor6": 51.94900848, "CTor1": 176.3906218,
	"CTor2": 202.8254814, "CTor3": 183.3700253,
	"CTor4": 185.2652264, "CTor5": 187.4727088,
	"CTor6": 214.1072423,
	"CPA01": 179.71749, "CPA02": 198.80251,
	"CPA03": 197.43882, "CPA04": 185.42609,
	"CPA05": 186.73373, "CPA06": 190.3981965,
	"CPA07": 192.9140393, "CPA08": 198.2726724,
	"CPA09": 182.9567595, "CPA10": 193.7743813,
	"CPA11": 196.2893948, "CPA12": 185.3693143,
	"CPA13": 191.0163613, "CPA14": 192.7280717,
	"CPA15": 172.6144269, "CPA16": 171.9967657,
	"CPA17": 182.0353776, "CPA18": 209.1828164,
	"CPA19": 182.0272987, "CPA20": 184.948528,
	"CPA21": 174.5560926,
}

// FactorTable maps B-dot channel names to their geometric factor 1/NA.
type FactorTable struct {
	factors map[string]float64
}

// NewFactorTable builds a table from the given factors. The map is copied
// so later mutations of the argument do not leak into the table.
func NewFactorTable(factors map[string]float64) *FactorTable {
	copied := make(map[string]float64, len(factors))
	for channel, value := range factors {
		copied[channel] = value
	}
	return &FactorTable{factors: copied}
}

// DefaultFactorTable returns the built-in calibration table.
func DefaultFactorTable() *FactorTable {
	return NewFactorTable(defaultBdotNA)
}

// Lookup returns 1/NA for the given channel.
func (t *FactorTable) Lookup(channel string) (float64, error) {
	factor, ok := t.factors[channel]
	if !ok {
		return 0, &ErrFactorNotFound{Channel: channel}
	}
	return factor, nil
}

// Len returns the number of channels in the table.
func (t *FactorTable) Len() int {
	return len(t.factors)
}
