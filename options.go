package ofwire

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/danmuck/ofwire/ofp"
)

var ErrInvalidOptions = errors.New("ofwire: invalid options")

// Options configure an Endpoint. The zero value selects the standard
// protocol at its highest supported version.
type Options struct {
	// Version caps the accepted wire version. Zero means ofp.MaxVersion.
	Version uint8
	// Debug selects the instrumented protocol variant when positive:
	// level 1 logs per-message summaries, level 2 and above adds hex
	// dumps of the raw bytes.
	Debug int
	// StrictXID turns awaited transaction id mismatches into errors.
	StrictXID bool
	// Logger receives instrumentation. Nil selects a plain stderr logger
	// when Debug is set and a disabled logger otherwise.
	Logger *zerolog.Logger
}

// normalize folds every accepted constructor shape into Options: a ready
// Options value, a mapping of option names, a bare integer version, or a
// sequence of name/value pairs with nested sequences flattened first.
func normalize(args []any) (Options, error) {
	if len(args) == 1 {
		switch v := args[0].(type) {
		case Options:
			return withDefaults(v)
		case *Options:
			if v == nil {
				return Options{}, fmt.Errorf("%w: nil options", ErrInvalidOptions)
			}
			return withDefaults(*v)
		case map[string]any:
			var opts Options
			var err error
			for name, val := range v {
				if opts, err = apply(opts, name, val); err != nil {
					return opts, err
				}
			}
			return withDefaults(opts)
		}
		if n, ok := intValue(args[0]); ok {
			opts, err := apply(Options{}, "version", n)
			if err != nil {
				return opts, err
			}
			return withDefaults(opts)
		}
	}

	flat := flatten(args, nil)
	if len(flat)%2 != 0 {
		return Options{}, fmt.Errorf("%w: name/value arguments must pair up, got %d values", ErrInvalidOptions, len(flat))
	}
	var opts Options
	var err error
	for i := 0; i < len(flat); i += 2 {
		name, ok := flat[i].(string)
		if !ok {
			return opts, fmt.Errorf("%w: option name %v (%T) is not a string", ErrInvalidOptions, flat[i], flat[i])
		}
		if opts, err = apply(opts, name, flat[i+1]); err != nil {
			return opts, err
		}
	}
	return withDefaults(opts)
}

func apply(opts Options, name string, val any) (Options, error) {
	switch name {
	case "version":
		n, ok := intValue(val)
		if !ok {
			return opts, fmt.Errorf("%w: version wants an integer, got %T", ErrInvalidOptions, val)
		}
		if err := checkVersion(n); err != nil {
			return opts, err
		}
		opts.Version = uint8(n)
	case "debug":
		n, ok := intValue(val)
		if !ok || n < 0 {
			return opts, fmt.Errorf("%w: debug wants a non-negative integer, got %v", ErrInvalidOptions, val)
		}
		opts.Debug = int(n)
	case "strict_xid":
		b, ok := val.(bool)
		if !ok {
			return opts, fmt.Errorf("%w: strict_xid wants a bool, got %T", ErrInvalidOptions, val)
		}
		opts.StrictXID = b
	case "logger":
		l, ok := val.(*zerolog.Logger)
		if !ok {
			return opts, fmt.Errorf("%w: logger wants a *zerolog.Logger, got %T", ErrInvalidOptions, val)
		}
		opts.Logger = l
	default:
		return opts, fmt.Errorf("%w: unknown option %q", ErrInvalidOptions, name)
	}
	return opts, nil
}

func withDefaults(o Options) (Options, error) {
	if o.Version == 0 {
		o.Version = ofp.MaxVersion
	}
	if err := checkVersion(int64(o.Version)); err != nil {
		return o, err
	}
	if o.Debug < 0 {
		return o, fmt.Errorf("%w: negative debug level %d", ErrInvalidOptions, o.Debug)
	}
	return o, nil
}

func checkVersion(n int64) error {
	if n < int64(ofp.Version10) || n > int64(ofp.MaxVersion) {
		return fmt.Errorf("%w: version 0x%02x outside 0x%02x..0x%02x",
			ErrInvalidOptions, n, ofp.Version10, ofp.MaxVersion)
	}
	return nil
}

func flatten(args []any, out []any) []any {
	for _, a := range args {
		if seq, ok := a.([]any); ok {
			out = flatten(seq, out)
			continue
		}
		out = append(out, a)
	}
	return out
}

func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		return int64(n), true
	}
	return 0, false
}
