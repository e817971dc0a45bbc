package cargo

import "sort"

// Preset is a crate commonly added to new projects, with the features it
// is usually added with.
type Preset struct {
	Crate    string
	Features []string
}

var presets = map[string]Preset{
	"warp":                  {Crate: "warp"},
	"tokio":                 {Crate: "tokio", Features: []string{"full"}},
	"dotenv":                {Crate: "dotenv"},
	"reqwest":               {Crate: "reqwest", Features: []string{"json"}},
	"state":                 {Crate: "state"},
	"local-ip-address":      {Crate: "local-ip-address"},
	"serde":                 {Crate: "serde", Features: []string{"derive", "rc"}},
	"serde_json":            {Crate: "serde_json"},
	"chrono":                {Crate: "chrono"},
	"diesel":                {Crate: "diesel", Features: []string{"postgres", "chrono", "serde_json"}},
	"rusoto_secretsmanager": {Crate: "rusoto_secretsmanager"},
	"rusoto_core":           {Crate: "rusoto_core"},
	"uuid":                  {Crate: "uuid", Features: []string{"v4"}},
	"anyhow":                {Crate: "anyhow"},
	"chrono-tz":             {Crate: "chrono-tz"},
	"tokio-stream":          {Crate: "tokio-stream"},
	"futures":               {Crate: "futures"},
	"imap":                  {Crate: "imap"},
	"native-tls":            {Crate: "native-tls"},
	"regex":                 {Crate: "regex"},
	"mailparse":             {Crate: "mailparse"},
	"csv":                   {Crate: "csv"},
	"redis":                 {Crate: "redis", Features: []string{"tokio-comp"}},
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames returns the registered preset names in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
