package feed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopfeed/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrMalformed wraps every decoding failure
var ErrMalformed = errors.New("malformed feed")

// Two document layouts are accepted. The list layout:
//
//	- users: [{shop: {name: ..., url: ...}}]
//	- categories: [{id: 224, name: Smartphones}]
//	- goods: [{id: 1, category: 224, ...}]
//
// and the mapping layout, where shop may be a plain name:
//
//	shop: Euroset
//	categories: [...]
//	goods: [...]
type section struct {
	Users      []rawUser     `yaml:"users"`
	Shop       yaml.Node     `yaml:"shop"`
	Categories []rawCategory `yaml:"categories"`
	Goods      []rawGoods    `yaml:"goods"`
}

type rawUser struct {
	Shop rawShop `yaml:"shop"`
}

type rawShop struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type rawCategory struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

type rawGoods struct {
	ID         int64       `yaml:"id"`
	Name       string      `yaml:"name"`
	Category   int64       `yaml:"category"`
	Model      string      `yaml:"model"`
	Price      yamlDecimal `yaml:"price"`
	PriceRRC   yamlDecimal `yaml:"price_rrc"`
	Quantity   int         `yaml:"quantity"`
	Parameters yaml.Node   `yaml:"parameters"`
}

type yamlDecimal struct {
	decimal.Decimal
}

func (d *yamlDecimal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: price must be a number", node.Line)
	}
	v, err := decimal.NewFromString(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: invalid price %q", node.Line, node.Value)
	}
	d.Decimal = v
	return nil
}

// Parse decodes a YAML feed document
func Parse(data []byte) (*catalog.Feed, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	var sections []section
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		for _, item := range root.Content {
			var s section
			if err := item.Decode(&s); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			sections = append(sections, s)
		}
	case yaml.MappingNode:
		var s section
		if err := root.Decode(&s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		sections = append(sections, s)
	default:
		return nil, fmt.Errorf("%w: line %d: expected a list or a mapping", ErrMalformed, root.Line)
	}

	feed := &catalog.Feed{}
	for _, s := range sections {
		if err := s.mergeInto(feed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	return feed, nil
}

func (s *section) mergeInto(feed *catalog.Feed) error {
	if len(s.Users) > 0 && feed.Shop.Name == "" {
		feed.Shop = catalog.FeedShop{Name: s.Users[0].Shop.Name, URL: s.Users[0].Shop.URL}
	}
	switch s.Shop.Kind {
	case 0:
	case yaml.ScalarNode:
		feed.Shop.Name = s.Shop.Value
	case yaml.MappingNode:
		var shop rawShop
		if err := s.Shop.Decode(&shop); err != nil {
			return err
		}
		feed.Shop = catalog.FeedShop{Name: shop.Name, URL: shop.URL}
	default:
		return fmt.Errorf("line %d: shop must be a name or a mapping", s.Shop.Line)
	}

	for _, c := range s.Categories {
		feed.Categories = append(feed.Categories, catalog.FeedCategory{ID: c.ID, Name: c.Name})
	}
	for _, g := range s.Goods {
		params, err := parameters(&g.Parameters)
		if err != nil {
			return err
		}
		feed.Goods = append(feed.Goods, catalog.FeedGoods{
			ID:         g.ID,
			Name:       g.Name,
			Category:   g.Category,
			Model:      g.Model,
			Price:      g.Price.Decimal,
			PriceRRC:   g.PriceRRC.Decimal,
			Quantity:   g.Quantity,
			Parameters: params,
		})
	}
	return nil
}

// parameters reads a mapping node pair by pair so the document order survives
func parameters(node *yaml.Node) ([]catalog.FeedParameter, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
	case yaml.MappingNode:
		params := make([]catalog.FeedParameter, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: parameter %q must have a scalar value", value.Line, key.Value)
			}
			params = append(params, catalog.FeedParameter{Name: key.Value, Value: value.Value})
		}
		return params, nil
	}
	return nil, fmt.Errorf("line %d: parameters must be a mapping", node.Line)
}
