package domain

import (
	"errors"
	"log"
	"math"

	"github.com/gobuffalo/envy"
	"github.com/gofrs/uuid"
	"github.com/kelseyhightower/envconfig"
)

var AllowedFileUploadTypes = []string{
	"image/bmp",
	"image/gif",
	"image/jpeg",
	"image/png",
	"image/webp",
}

// Context keys
const (
	ContextKeyExtras = "extras"

	EventPayloadGroupKey   = "group_key"
	EventPayloadInspection = "inspection"
	EventPayloadPath       = "path"
	EventPayloadPaths      = "paths"
	EventPayloadURL        = "url"
	EventPayloadError      = "error"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"

	// MaxPhotosPerMarker is how many photos a single damage marker may carry
	MaxPhotosPerMarker = 3

	Megabyte = 1048576
)

// Event Kinds
const (
	EventInspectionChanged = "inspection:changed"
	EventPhotoUploaded     = "photo:uploaded"
	EventPhotoDeleteFailed = "photo:delete-failed"
	EventPhotosAbandoned   = "photos:abandoned"
)

// Env Holds the values of environment variables
var Env struct {
	GoEnv      string `ignored:"true"`
	AppName    string `default:"Vehicle Intake" split_words:"true"`
	ServerPort int    `default:"3000" split_words:"true"`
	UIURL      string `default:"http://missing.ui.url"`
	SentryDSN  string `default:"" envconfig:"SENTRY_DSN"`

	AwsRegion           string `split_words:"true"`
	AwsS3Endpoint       string `split_words:"true"`
	AwsS3DisableSSL     bool   `split_words:"true"`
	AwsS3Bucket         string `split_words:"true"`
	AwsS3ACL            string `default:"public-read" split_words:"true"`
	AwsS3URLLifeMinutes int    `default:"1440" split_words:"true"`
	AwsAccessKeyID      string `split_words:"true"`
	AwsSecretAccessKey  string `split_words:"true"`

	// MaxFileSize is the largest upload the photo service accepts, before compression
	MaxFileSize int `default:"10485760" split_words:"true"`

	// compression targets for photos attached to damage markers
	PhotoMaxDimension int `default:"1920" split_words:"true"`
	PhotoMaxBytes     int `default:"1048576" split_words:"true"`
	PhotoJPEGQuality  int `default:"82" split_words:"true"`
}

func init() {
	readEnv()
}

// readEnv loads environment data into `Env`
func readEnv() {
	err := envconfig.Process("", &Env)
	if err != nil {
		log.Fatal(errors.New("error loading env vars: " + err.Error()))
	}

	// Doing this separately to avoid needing two environment variables for the same thing
	Env.GoEnv = envy.Get("GO_ENV", EnvDevelopment)
}

// IsProduction returns true if GoEnv is neither development nor test
func IsProduction() bool {
	return Env.GoEnv != EnvDevelopment && Env.GoEnv != EnvTest
}

// GetUUID creates a new, unique version 4 (random) UUID and returns it
// as a uuid.UUID. Errors are ignored.
func GetUUID() uuid.UUID {
	id, err := uuid.NewV4()
	if err != nil {
		log.Printf("error creating new uuid ... %v", err)
	}
	return id
}

// IsStringInSlice iterates over a slice of strings, looking for the given
// string. If found, true is returned. Otherwise, false is returned.
func IsStringInSlice(needle string, haystack []string) bool {
	for _, hs := range haystack {
		if needle == hs {
			return true
		}
	}

	return false
}

// ClampPercent limits a value to the closed range [0,100]. NaN is treated as 0.
func ClampPercent(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
