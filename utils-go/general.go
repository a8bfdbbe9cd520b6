package utils

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"flag"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

type BaseConfig interface {
	GetPort() string
	GetTimeout() int
	GetAppName() string
	GetIsProduction() bool
	GetLogLevel() string
}

type ErrorResponse struct {
	FailedField string `json:"failedField"`
	Tag         string `json:"tag"`
	Value       string `json:"value,omitempty"`
}

// GenerateNumericId returns a string of length random decimal digits.
func GenerateNumericId(length int) string {
	return randomString(length, "0123456789")
}

func GeneratePassword(length int) string {
	return randomString(length, passwordAlphabet)
}

func randomString(length int, alphabet string) string {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			log.Panic().Err(err).Msg("Failed to read random source")
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out)
}

func DecodeBase64(message string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.TrimSpace(message))
}

func ParseFlags() bool {
	devMode := flag.Bool("dev", false, "Run in dev mode")
	envFile := flag.String("env", "", ".env file path")

	flag.Parse()

	if err := godotenv.Load(func() string {
		if len(*envFile) > 0 {
			return *envFile
		}

		return ".prod.env"
	}()); err != nil {
		log.Warn().Err(err).Msg("Could not load .env file, using process environment")
	}

	return !*devMode
}

func Format(in string, data map[string]string) string {
	for k, v := range data {
		in = strings.ReplaceAll(in, k, v)
	}
	return in
}

// ValidateStruct runs the shared validator and flattens the failures.
func ValidateStruct(s interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*ErrorResponse{{FailedField: "body", Tag: "invalid"}}
	}

	for _, err := range validationErrors {
		var element ErrorResponse
		element.FailedField = err.Field()
		element.Tag = err.Tag()
		element.Value = err.Param()
		errors = append(errors, &element)
	}
	return errors
}

func ConvertConfig[T, S any](input T) (*S, error) {
	res, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	cfg := new(S)
	err = json.Unmarshal(res, cfg)

	return cfg, err
}

// FlexTime accepts RFC3339 timestamps as well as bare YYYY-MM-DD dates.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", s)
		if err != nil {
			return err
		}
	}

	t.Time = parsed
	return nil
}

func (t *FlexTime) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
