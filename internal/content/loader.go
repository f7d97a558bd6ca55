package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// packFile is the on-disk YAML shape a content pack directory's files
// decode into; a pack is split across any number of files, one per
// content kind, so authors can keep cards.yaml, relics.yaml, etc. separate.
type packFile struct {
	Cards      []CardDef      `yaml:"cards"`
	Relics     []RelicDef     `yaml:"relics"`
	Statuses   []StatusDef    `yaml:"statuses"`
	Enemies    []EnemyDef     `yaml:"enemies"`
	Events     []EventDef     `yaml:"events"`
	Archetypes []ArchetypeDef `yaml:"archetypes"`
	Characters []CharacterDef `yaml:"characters"`
}

// LoadPackDir reads every *.yaml/*.yml file directly inside dir (no
// recursion), decodes each as a packFile, and merges them into a single
// Pack whose ID is the directory's base name. Chapter overrides are not
// read from the files: the returned Pack's ChapterOverrides is always nil.
func LoadPackDir(dir string) (Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Pack{}, fmt.Errorf("content: read pack dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	pack := Pack{ID: filepath.Base(dir)}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return Pack{}, fmt.Errorf("content: read %s: %w", name, err)
		}
		var pf packFile
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return Pack{}, fmt.Errorf("content: parse %s: %w", name, err)
		}
		pack.Cards = append(pack.Cards, pf.Cards...)
		pack.Relics = append(pack.Relics, pf.Relics...)
		pack.Statuses = append(pack.Statuses, pf.Statuses...)
		pack.Enemies = append(pack.Enemies, pf.Enemies...)
		pack.Events = append(pack.Events, pf.Events...)
		pack.Archetypes = append(pack.Archetypes, pf.Archetypes...)
		pack.Characters = append(pack.Characters, pf.Characters...)
	}
	return pack, nil
}

// DiscoverPackDirs lists immediate subdirectories of root, sorted by
// name, for the environment-directory scan described in §4.2/§6.
func DiscoverPackDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("content: scan pack root %s: %w", root, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
