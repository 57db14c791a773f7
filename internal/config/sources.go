package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sources.yaml
var defaultSources []byte

// Source 一个订阅源：URL + 所属分类
type Source struct {
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// Sources 启动时加载，运行期只读
type Sources struct {
	Tags  map[string][]string `yaml:"tags"`
	Feeds []Source            `yaml:"feeds"`
}

// LoadSources 读取 YAML 订阅源配置；path 为空时使用内置默认配置
func LoadSources(path string) (*Sources, error) {
	data := defaultSources
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read sources %s: %w", path, err)
		}
		data = b
	}
	return ParseSources(data)
}

func ParseSources(data []byte) (*Sources, error) {
	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("config: parse sources: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Sources) Validate() error {
	if len(s.Feeds) == 0 {
		return errors.New("config: no feeds configured")
	}
	for i, f := range s.Feeds {
		if strings.TrimSpace(f.URL) == "" {
			return fmt.Errorf("config: feed #%d has empty url", i)
		}
		if strings.TrimSpace(f.Category) == "" {
			return fmt.Errorf("config: feed %s has empty category", f.URL)
		}
	}
	return nil
}

// TagsFor 返回分类对应的标签副本，未知分类返回空切片（非 nil，JSON 输出为 []）
func (s *Sources) TagsFor(category string) []string {
	tags := s.Tags[category]
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
