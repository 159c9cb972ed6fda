package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
)

//go:embed programs.yaml
var defaultCatalogYAML []byte

type programEntry struct {
	ID               int      `koanf:"id"`
	Code             string   `koanf:"code"`
	Name             string   `koanf:"name"`
	Family           string   `koanf:"family"`
	Grades           []string `koanf:"grades"`
	SecondaryRanking bool     `koanf:"secondary_ranking"`
	LimitedMode      bool     `koanf:"limited_mode"`
}

// bytesProvider feeds an in-memory document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) {
	return b, nil
}

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("bytes provider does not support Read()")
}

// LoadProgramCatalog reads the program list from path, or from the embedded
// default catalog when path is empty. Unknown family tags fail the load.
func LoadProgramCatalog(path string) (program.Catalog, error) {
	k := koanf.New(".")

	var provider koanf.Provider = bytesProvider(defaultCatalogYAML)
	source := "embedded"
	if path = strings.TrimSpace(path); path != "" {
		provider = file.Provider(path)
		source = path
	}
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return program.Catalog{}, fmt.Errorf("load program catalog %s: %w", source, err)
	}

	var entries []programEntry
	if err := k.UnmarshalWithConf("programs", &entries, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return program.Catalog{}, fmt.Errorf("decode program catalog %s: %w", source, err)
	}
	if len(entries) == 0 {
		return program.Catalog{}, fmt.Errorf("program catalog %s is empty", source)
	}

	items := make([]program.Descriptor, 0, len(entries))
	for _, entry := range entries {
		grades := make([]program.Grade, 0, len(entry.Grades))
		for _, grade := range entry.Grades {
			if grade = strings.TrimSpace(grade); grade != "" {
				grades = append(grades, program.Grade(grade))
			}
		}
		items = append(items, program.Descriptor{
			ID:                       entry.ID,
			Code:                     strings.ToUpper(strings.TrimSpace(entry.Code)),
			Name:                     strings.TrimSpace(entry.Name),
			Family:                   program.ParseFamily(entry.Family),
			Grades:                   grades,
			SupportsSecondaryRanking: entry.SecondaryRanking,
			LimitedMode:              entry.LimitedMode,
		})
	}

	catalog, err := program.NewCatalog(items)
	if err != nil {
		return program.Catalog{}, fmt.Errorf("validate program catalog %s: %w", source, err)
	}
	return catalog, nil
}
