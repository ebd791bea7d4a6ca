package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rileyhilliard/cfx/internal/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Keys returns every settable config key in dotted form, sorted.
func Keys() []string {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	keys := v.AllKeys()
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key is a known dotted config key.
func IsKey(key string) bool {
	key = strings.ToLower(key)
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// WriteDefault writes cfg to path as a commented YAML file. An existing file
// is only replaced when force is set.
func WriteDefault(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+path,
			"Use --force to overwrite it")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.WrapWithCode(err, errors.ErrUnwritable,
			"Failed to create config directory",
			"Check permissions on "+filepath.Dir(path))
	}

	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{documentFor(cfg)}}
	data, err := encode(doc)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapWithCode(err, errors.ErrUnwritable,
			"Failed to write config file",
			"Check permissions on "+path)
	}
	return nil
}

// Set updates one dotted key in the config file at path, keeping the rest of
// the file and its comments intact. The file is created if missing. If the
// result fails to load or validate, the original content is restored.
func Set(path, key, value string) error {
	key = strings.ToLower(key)
	if !IsKey(key) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown config key '%s'", key),
			"Valid keys: "+strings.Join(Keys(), ", "))
	}

	original, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.WrapWithCode(err, errors.ErrUnreadable,
			"Failed to read config file",
			"Check permissions on "+path)
	}

	// Parse as yaml.Node to preserve structure
	var root yaml.Node
	if len(original) > 0 {
		if err := yaml.Unmarshal(original, &root); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to parse config file",
				"Check the YAML syntax in "+path)
		}
	}
	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{mappingNode()}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return errors.New(errors.ErrConfig,
			"Expected a mapping at the top of "+path,
			"Run 'cfx config init --force' to regenerate the file")
	}

	node := root.Content[0]
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child := findMapValue(node, part)
		if child == nil {
			child = mappingNode()
			node.Content = append(node.Content, scalarNode(part), child)
		}
		if child.Kind != yaml.MappingNode {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' in %s is not a section", part, path),
				"Fix the file by hand or regenerate it with 'cfx config init --force'")
		}
		node = child
	}

	leaf := parts[len(parts)-1]
	if existing := findMapValue(node, leaf); existing != nil {
		existing.Kind = yaml.ScalarNode
		existing.Tag = ""
		existing.Style = 0
		existing.Content = nil
		existing.Value = value
	} else {
		node.Content = append(node.Content, scalarNode(leaf), scalarNode(value))
	}

	data, err := encode(&root)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.WrapWithCode(err, errors.ErrUnwritable,
			"Failed to create config directory",
			"Check permissions on "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapWithCode(err, errors.ErrUnwritable,
			"Failed to write config file",
			"Check permissions on "+path)
	}

	cfg, err := Load(path)
	if err == nil {
		err = Validate(cfg)
	}
	if err != nil {
		restore(path, original)
		return err
	}
	return nil
}

// restore puts back the previous file content, or removes a file Set created.
func restore(path string, original []byte) {
	if original == nil {
		_ = os.Remove(path)
		return
	}
	_ = os.WriteFile(path, original, 0o600)
}

// documentFor builds the YAML tree for cfg with a comment per section.
func documentFor(cfg *Config) *yaml.Node {
	doc := mappingNode()
	doc.HeadComment = "cfx configuration. Every key can be overridden with CFX_<SECTION>_<KEY>."
	addPair(doc, "version", scalarNode(strconv.Itoa(cfg.Version)), "")

	api := mappingNode()
	addPair(api, "base_url", strNode(cfg.API.BaseURL), "")
	addPair(api, "list_url", strNode(cfg.API.ListURL), "")
	addPair(api, "user_agent", strNode(cfg.API.UserAgent), "empty sends cfx/<version>")
	addPair(api, "request_timeout", scalarNode(cfg.API.RequestTimeout.String()), "")
	addPair(api, "search_timeout", scalarNode(cfg.API.SearchTimeout.String()), "")
	addPair(api, "rate_limit", scalarNode(strconv.FormatFloat(cfg.API.RateLimit, 'f', -1, 64)), "requests per second")
	addPair(api, "rate_burst", scalarNode(strconv.Itoa(cfg.API.RateBurst)), "")
	addPair(doc, "api", api, "Server directory endpoints and request pacing")

	poll := mappingNode()
	addPair(poll, "interval", scalarNode(cfg.Poll.Interval.String()), "minimum "+MinInterval.String())
	addPair(poll, "chart_points", scalarNode(strconv.Itoa(cfg.Poll.ChartPoints)), "")
	addPair(doc, "poll", poll, "Watch sessions")

	lists := mappingNode()
	addPair(lists, "max_recent", scalarNode(strconv.Itoa(cfg.Lists.MaxRecent)), "")
	addPair(lists, "max_favorites", scalarNode(strconv.Itoa(cfg.Lists.MaxFavorites)), "")
	addPair(doc, "lists", lists, "Persisted list sizes")

	storage := mappingNode()
	addPair(storage, "dir", strNode(cfg.Storage.Dir), "")
	addPair(doc, "storage", storage, "Where favorites and recent searches are kept")

	logCfg := mappingNode()
	addPair(logCfg, "level", strNode(cfg.Log.Level), "debug, info, warn or error")
	addPair(logCfg, "file", strNode(cfg.Log.File), "empty writes to <storage.dir>/"+LogFileName)
	addPair(doc, "log", logCfg, "")

	return doc
}

func encode(node *yaml.Node) ([]byte, error) {
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return []byte(buf.String()), nil
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

// strNode tags value as a string so empty values survive a round trip.
func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func addPair(m *yaml.Node, key string, value *yaml.Node, comment string) {
	k := scalarNode(key)
	if comment != "" {
		if value.Kind == yaml.MappingNode {
			k.HeadComment = comment
		} else {
			value.LineComment = comment
		}
	}
	m.Content = append(m.Content, k, value)
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}
