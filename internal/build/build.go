package build

import "strings"

var (
	Version = "dev"
	AppName = "Waverun"
	Slug    = ""
)

func init() {
	if Slug == "" {
		Slug = strings.ToLower(AppName)
	}
}
