package config

import "flag"

// Flags holds command-line overrides. Register them on a command's FlagSet
// with RegisterFlags, then pass the result to Load.
type Flags struct {
	Config           string
	Debug            bool
	LogFile          string
	SplitAngle       float64
	NoAxisConversion bool
	RejectMissingUV  bool
	NameEncoding     string
	OutputDir        string
}

// RegisterFlags defines the config override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log", "", "Also write logs to this file")
	fs.Float64Var(&f.SplitAngle, "angle", -1, "Edge split angle in degrees (default 60)")
	fs.BoolVar(&f.NoAxisConversion, "no-axis-conversion", false, "Keep source axes (skip Z-up to Y-up rotation)")
	fs.BoolVar(&f.RejectMissingUV, "reject-missing-uv", false, "Fail on meshes without a UV layer")
	fs.StringVar(&f.NameEncoding, "name-encoding", "", "Charset of OBJ object names (e.g. euc-kr)")
	fs.StringVar(&f.OutputDir, "out-dir", "", "Directory for output files")
	return f
}

// applyFlags applies CLI flag overrides to the config.
func (f *Flags) applyFlags(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.SplitAngle >= 0 {
		cfg.Export.SplitAngle = float32(f.SplitAngle)
	}
	if f.NoAxisConversion {
		cfg.Export.AxisConversion = false
	}
	if f.RejectMissingUV {
		cfg.Export.MissingUV = "reject"
	}
	if f.NameEncoding != "" {
		cfg.Export.NameEncoding = f.NameEncoding
	}
	if f.OutputDir != "" {
		cfg.Export.OutputDir = f.OutputDir
	}
}
