package shotloader

type Configuration struct {
	Verbosity        int    `json:"verbosity"`
	DataRoot         string `json:"data_root"`
	FileOut          string `json:"file_out"`
	PlotFile         string `json:"plot_file"`
	ReadFluxLoops    bool   `json:"read_flux_loops"`
	ReadBDots        bool   `json:"read_bdots"`
	ReadCurrents     bool   `json:"read_currents"`
	NoDB             bool   `json:"no_db"`
	Host             string `json:"host"`
	User             string `json:"user"`
	Passwd           string `json:"pass"`
	DBName           string `json:"dbname"`
	NumWorkers       int    `json:"num_workers"`
	Parallel         bool   `json:"parallel"`
	WriteData        bool   `json:"write_data"`
	CompressionLevel int    `json:"compression_level"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
