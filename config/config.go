/*
Package config reads the YAML configuration of the entropic command: the
estimator hyperparameters, where training data is read from, where trees are
grown and how the service and its logs behave.

A configuration file looks like:

	estimator:
	  max_depth: 4
	  min_samples_split: 2
	  workers: 4
	class_column: play
	node_store:
	  kind: badger
	  path: /var/lib/entropic
	server:
	  addr: ":8080"
	log:
	  level: debug
*/
package config

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pbanos/entropic"
	"github.com/pbanos/entropic/tree"
	"github.com/pbanos/entropic/tree/badgerstore"
	treejson "github.com/pbanos/entropic/tree/json"
	"github.com/pbanos/entropic/tree/redisstore"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/redis.v5"
	"gopkg.in/yaml.v2"
)

// Config is the configuration of the entropic command
type Config struct {
	Estimator   *entropic.Config `yaml:"estimator" validate:"required"`
	// ClassColumn is the column grown trees predict when no flag names one
	ClassColumn string           `yaml:"class_column"`
	NodeStore   NodeStore        `yaml:"node_store"`
	Server      Server           `yaml:"server"`
	Log         Log              `yaml:"log"`
}

// NodeStore describes the backend trees are grown on
type NodeStore struct {
	// Kind is one of memory, badger or redis
	Kind string `yaml:"kind" validate:"oneof=memory badger redis"`
	// Path to the badger database directory, in memory if empty
	Path string `yaml:"path"`
	// Address of the redis server
	RedisAddr string `yaml:"redis_addr" validate:"required_if=Kind redis"`
	// Prefix for the keys of the nodes
	Prefix string `yaml:"prefix" validate:"required"`
}

// Server holds the settings of the prediction service
type Server struct {
	Addr string `yaml:"addr" validate:"required"`
}

// Log holds the settings of the logger
type Log struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Estimator: entropic.DefaultConfig(),
		NodeStore: NodeStore{Kind: "memory", Prefix: "entropic"},
		Server:    Server{Addr: ":8080"},
		Log:       Log{Level: "info"},
	}
}

var validate = validator.New()

/*
Read takes an io.Reader with YAML content and returns the configuration in
it, with the values it does not set taken from Default(), or an error if the
content cannot be parsed or holds invalid values. Unknown keys are rejected.
*/
func Read(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	c := Default()
	err = yaml.UnmarshalStrict(data, c)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadFile behaves like Read on the file at the given path. An empty path
// returns Default().
func ReadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config at %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Validate returns an error if any value of the configuration is invalid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return c.Estimator.Validate()
}

/*
Logger builds the zap logger described by the configuration: a production
JSON logger, or a development console one.
*/
func (l Log) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

/*
Open returns a function creating the NodeStore for every tree to grow or
load, and a function to release the backend. Trees grown on a shared backend
get their own key prefix.
*/
func (ns NodeStore) Open(ctx context.Context) (func() tree.NodeStore, func() error, error) {
	switch ns.Kind {
	case "badger":
		db, err := badgerstore.Open(ns.Path)
		if err != nil {
			return nil, nil, err
		}
		return func() tree.NodeStore {
			return &sharedStore{badgerstore.New(db, ns.treePrefix(), treejson.NewNodeEncodeDecoder())}
		}, db.Close, nil
	case "redis":
		rc := redis.NewClient(&redis.Options{Addr: ns.RedisAddr})
		if err := rc.Ping().Err(); err != nil {
			rc.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", ns.RedisAddr, err)
		}
		return func() tree.NodeStore {
			return &sharedStore{redisstore.New(rc, ns.treePrefix(), treejson.NewNodeEncodeDecoder())}
		}, rc.Close, nil
	}
	return tree.NewMemoryNodeStore, func() error { return nil }, nil
}

func (ns NodeStore) treePrefix() string {
	return fmt.Sprintf("%s:%s", ns.Prefix, uuid.NewString())
}

// sharedStore is a NodeStore over a backend shared by several trees, whose
// Close leaves the backend open.
type sharedStore struct {
	tree.NodeStore
}

func (ss *sharedStore) Close(ctx context.Context) error {
	return nil
}
