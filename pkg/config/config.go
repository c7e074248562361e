package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
)

// Default configuration values
const (
	DefaultListenAddr      = ":3000"
	DefaultWebsocketPath   = "/ws"
	DefaultAllowedOrigins  = "*"
	DefaultSTUN            = "stun:stun.l.google.com:19302"
	DefaultMaxMessageBytes = 64 * 1024 // enough for SDP with many candidates
	DefaultSendQueueSize   = 256
	DefaultPongWait        = 60 * time.Second
	DefaultPingInterval    = (DefaultPongWait * 9) / 10
)

// Config holds the relay configuration.
type Config struct {
	ListenAddr     string   `validate:"required" label:"listen address"`
	WebsocketPath  string   `validate:"required,startswith=/" label:"websocket path"`
	AllowedOrigins []string `validate:"required,min=1,dive,required" label:"allowed origins"`

	// NotifyDisconnect sends userDisconnected to the remaining members of
	// every room a disconnecting peer was in.
	NotifyDisconnect bool

	// StrictNegotiation rejects offers, answers and candidates that don't
	// parse as WebRTC objects instead of forwarding them untouched.
	StrictNegotiation bool

	MaxMessageBytes int           `validate:"min=1024" label:"max message bytes"`
	SendQueueSize   int           `validate:"min=1" label:"send queue size"`
	PingInterval    time.Duration `validate:"gt=0" label:"ping interval"`
	PongWait        time.Duration `validate:"gtfield=PingInterval" label:"pong wait"`

	// ICE servers advertised to clients
	STUNServers    []string `validate:"dive,required" label:"stun servers"`
	TURNServers    []string `validate:"dive,required" label:"turn servers"`
	TURNUsername   string   `validate:"required_with=TURNServers" label:"turn username"`
	TURNCredential string   `validate:"required_with=TURNServers" label:"turn credential"`
	TURNOnly       bool
}

// Options carries CLI flag overrides. Empty strings and nil pointers leave
// the value from the environment (or the default) in place.
type Options struct {
	EnvFile           string
	ListenAddr        string
	WebsocketPath     string
	AllowedOrigins    string
	NotifyDisconnect  *bool
	StrictNegotiation *bool
	STUNServers       string
	TURNServers       string
	TURNUsername      string
	TURNCredential    string
	TURNOnly          *bool
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		ListenAddr:      DefaultListenAddr,
		WebsocketPath:   DefaultWebsocketPath,
		AllowedOrigins:  []string{DefaultAllowedOrigins},
		MaxMessageBytes: DefaultMaxMessageBytes,
		SendQueueSize:   DefaultSendQueueSize,
		PingInterval:    DefaultPingInterval,
		PongWait:        DefaultPongWait,
		STUNServers:     []string{DefaultSTUN},
	}
}

// Load reads configuration with the following priority:
// 1. CLI flags (passed via Options) - highest priority
// 2. Environment variables, including those from a .env file
// 3. Hardcoded defaults - lowest priority
func Load(opts Options) (*Config, error) {
	// godotenv.Load does not overwrite existing env vars
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", opts.EnvFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyOptions(opts)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("RELAY_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("RELAY_WS_PATH"); v != "" {
		c.WebsocketPath = v
	}
	if v := os.Getenv("RELAY_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("RELAY_STUN_SERVERS"); v != "" {
		c.STUNServers = splitList(v)
	}
	if v := os.Getenv("RELAY_TURN_SERVERS"); v != "" {
		c.TURNServers = splitList(v)
	}
	if v := os.Getenv("RELAY_TURN_USERNAME"); v != "" {
		c.TURNUsername = v
	}
	if v := os.Getenv("RELAY_TURN_CREDENTIAL"); v != "" {
		c.TURNCredential = v
	}

	var err error
	if c.NotifyDisconnect, err = envBool("RELAY_NOTIFY_DISCONNECT", c.NotifyDisconnect); err != nil {
		return err
	}
	if c.StrictNegotiation, err = envBool("RELAY_STRICT_NEGOTIATION", c.StrictNegotiation); err != nil {
		return err
	}
	if c.TURNOnly, err = envBool("RELAY_TURN_ONLY", c.TURNOnly); err != nil {
		return err
	}
	if c.MaxMessageBytes, err = envInt("RELAY_MAX_MESSAGE_BYTES", c.MaxMessageBytes); err != nil {
		return err
	}
	if c.SendQueueSize, err = envInt("RELAY_SEND_QUEUE", c.SendQueueSize); err != nil {
		return err
	}
	if c.PingInterval, err = envDuration("RELAY_PING_INTERVAL", c.PingInterval); err != nil {
		return err
	}
	if c.PongWait, err = envDuration("RELAY_PONG_WAIT", c.PongWait); err != nil {
		return err
	}
	return nil
}

func (c *Config) applyOptions(opts Options) {
	if opts.ListenAddr != "" {
		c.ListenAddr = opts.ListenAddr
	}
	if opts.WebsocketPath != "" {
		c.WebsocketPath = opts.WebsocketPath
	}
	if opts.AllowedOrigins != "" {
		c.AllowedOrigins = splitList(opts.AllowedOrigins)
	}
	if opts.STUNServers != "" {
		c.STUNServers = splitList(opts.STUNServers)
	}
	if opts.TURNServers != "" {
		c.TURNServers = splitList(opts.TURNServers)
	}
	if opts.TURNUsername != "" {
		c.TURNUsername = opts.TURNUsername
	}
	if opts.TURNCredential != "" {
		c.TURNCredential = opts.TURNCredential
	}
	if opts.NotifyDisconnect != nil {
		c.NotifyDisconnect = *opts.NotifyDisconnect
	}
	if opts.StrictNegotiation != nil {
		c.StrictNegotiation = *opts.StrictNegotiation
	}
	if opts.TURNOnly != nil {
		c.TURNOnly = *opts.TURNOnly
	}
}

// Validate checks field constraints and that every ICE server URL parses.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.TURNOnly && len(c.TURNServers) == 0 {
		return errors.New("invalid configuration: turn-only mode requires at least one TURN server")
	}
	for _, raw := range append(append([]string{}, c.STUNServers...), c.TURNServers...) {
		if _, err := stun.ParseURI(raw); err != nil {
			return fmt.Errorf("invalid ICE server URL %q: %w", raw, err)
		}
	}
	return nil
}

// ICEConfiguration builds the RTCConfiguration clients should use. In
// TURN-only mode STUN servers are left out and the transport policy is
// restricted to relay candidates.
func (c *Config) ICEConfiguration() webrtc.Configuration {
	policy := webrtc.ICETransportPolicyAll
	if c.TURNOnly {
		policy = webrtc.ICETransportPolicyRelay
	}

	config := webrtc.Configuration{
		ICEServers:         []webrtc.ICEServer{},
		ICETransportPolicy: policy,
	}

	if len(c.TURNServers) > 0 {
		config.ICEServers = append(config.ICEServers, webrtc.ICEServer{
			URLs:           c.TURNServers,
			Username:       c.TURNUsername,
			Credential:     c.TURNCredential,
			CredentialType: webrtc.ICECredentialTypePassword,
		})
	}

	if !c.TURNOnly && len(c.STUNServers) > 0 {
		config.ICEServers = append(config.ICEServers, webrtc.ICEServer{
			URLs: c.STUNServers,
		})
	}

	return config
}

// splitList splits a comma separated list, dropping blanks. It returns nil
// when nothing is left.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
