package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"blocksmith/internal/types"
	"blocksmith/internal/world"
)

// worldObject is the YAML form of one catalog entry.
type worldObject struct {
	Size  string `yaml:"size"`
	Color string `yaml:"color"`
	Form  string `yaml:"form"`
}

// worldFile is the on-disk world description.
type worldFile struct {
	Objects map[string]worldObject `yaml:"objects"`
	Stacks  [][]string             `yaml:"stacks"`
	Arm     int                    `yaml:"arm"`
	Holding string                 `yaml:"holding"`
}

// loadWorld reads and validates a world description file.
func loadWorld(path string) (types.Catalog, world.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, world.State{}, fmt.Errorf("failed to read world file: %w", err)
	}
	return parseWorld(data)
}

func parseWorld(data []byte) (types.Catalog, world.State, error) {
	var wf worldFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, world.State{}, fmt.Errorf("failed to parse world file: %w", err)
	}
	if len(wf.Objects) == 0 {
		return nil, world.State{}, fmt.Errorf("world file declares no objects")
	}

	catalog := make(types.Catalog, len(wf.Objects))
	for id, obj := range wf.Objects {
		if id == types.Floor {
			return nil, world.State{}, fmt.Errorf("%q is reserved and cannot be declared", types.Floor)
		}
		size, err := types.ParseSize(obj.Size)
		if err != nil {
			return nil, world.State{}, fmt.Errorf("object %q: %w", id, err)
		}
		form, err := types.ParseForm(obj.Form)
		if err != nil {
			return nil, world.State{}, fmt.Errorf("object %q: %w", id, err)
		}
		catalog[id] = types.Object{Size: size, Color: obj.Color, Form: form}
	}

	s := world.State{Stacks: wf.Stacks, Arm: wf.Arm, Holding: wf.Holding}
	if s.Stacks == nil {
		s.Stacks = [][]string{}
	}
	if err := s.Validate(catalog); err != nil {
		return nil, world.State{}, err
	}
	return catalog, s, nil
}
