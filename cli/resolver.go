package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/calc/log"
)

// decodeFunc decodes a configuration document into a map.
type decodeFunc func(r io.Reader, v *map[string]any) error

func decodeYAML(r io.Reader, v *map[string]any) error {
	err := yaml.NewDecoder(r).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil // empty document
	}

	return err
}

func decodeTOML(r io.Reader, v *map[string]any) error {
	_, err := toml.NewDecoder(r).Decode(v)

	return err
}

// resolve returns a [kong.ConfigurationLoader] for configuration files
// decoded by decode.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config.yaml", decodeYAML), path)
//
// Keys are flag names. Hyphens and underscores are interchangeable, and
// nested tables are flattened by joining keys with a hyphen, so each of
// these sets --log-level:
//
//	log-level: debug
//	log_level: debug
//	log:
//	  level: debug
//
// A file that cannot be decoded is ignored with a warning. Command-line flags
// override config file values.
func resolve(
	ctx context.Context,
	name string,
	decode decodeFunc,
) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := decode(r, &doc); err != nil {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.String("file", name),
				slog.Any("error", err),
			)

			return config{}, nil
		}

		conf := make(config)
		conf.flatten("", doc)

		log.TraceContext(ctx, "configuration loaded",
			slog.String("file", name),
			slog.Any("keys", slices.Sorted(maps.Keys(conf))),
		)

		return conf, nil
	}
}

// config implements [kong.Resolver] over flattened, hyphenated keys.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Not found returns nil to let Kong use defaults.
	return c[normalizeKey(flag.Name)], nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", "-"))
}

// flatten stores the leaves of m under hyphen-joined keys.
func (c config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := normalizeKey(k)
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := v.(map[string]any); ok {
			c.flatten(key, sub)

			continue
		}

		c[key] = scalar(v)
	}
}

// scalar converts a decoded value into one Kong can map onto a flag.
// Kong requires numbers as strings for parsing.
func scalar(v any) any {
	switch v := v.(type) {
	case bool, string, nil:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = scalar(e)
		}

		return out
	default:
		return fmt.Sprint(v)
	}
}
