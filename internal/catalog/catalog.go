package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"GolfPassport/internal/model"
)

//go:embed catalog.yaml
var defaultData []byte

// Catalog is the read-only reference table of categories, courses,
// packages and add-ons. It is never mutated after construction.
type Catalog struct {
	categories    []model.CategoryConfig
	courses       []model.Course
	courseIndex   map[int]int
	packages      []model.MembershipPackage
	addOns        []model.AddOn
	topUpPresets  []int
	radiusPresets []int
}

type fileCatalog struct {
	Categories []struct {
		Category   string `yaml:"category"`
		CreditCost int    `yaml:"credit_cost"`
		Cap        int    `yaml:"cap"`
		Color      string `yaml:"color"`
	} `yaml:"categories"`
	Courses []struct {
		ID       int     `yaml:"id"`
		Name     string  `yaml:"name"`
		Category string  `yaml:"category"`
		Area     string  `yaml:"area"`
		Lat      float64 `yaml:"lat"`
		Lon      float64 `yaml:"lon"`
		Status   string  `yaml:"status"`
	} `yaml:"courses"`
	Packages []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		Title       string `yaml:"title"`
		Credits     int    `yaml:"credits"`
		Price       string `yaml:"price"`
		Recommended bool   `yaml:"recommended"`
	} `yaml:"packages"`
	AddOns []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Price       string `yaml:"price"`
	} `yaml:"add_ons"`
	TopUpPresets  []int `yaml:"top_up_presets"`
	RadiusPresets []int `yaml:"radius_presets"`
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultData)
})

// Default returns the built-in catalog. It is parsed on first use and shared
// for the life of the process.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Load reads a catalog from a YAML file. An empty path returns Default().
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var raw fileCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		courseIndex:   make(map[int]int, len(raw.Courses)),
		topUpPresets:  raw.TopUpPresets,
		radiusPresets: raw.RadiusPresets,
	}

	seenCat := make(map[model.Category]bool)
	for _, rc := range raw.Categories {
		cat := model.Category(rc.Category)
		if !cat.Valid() {
			return nil, fmt.Errorf("catalog: unknown category %q", rc.Category)
		}
		if seenCat[cat] {
			return nil, fmt.Errorf("catalog: category %s configured twice", cat)
		}
		if rc.CreditCost <= 0 || rc.Cap <= 0 {
			return nil, fmt.Errorf("catalog: category %s needs positive credit_cost and cap", cat)
		}
		seenCat[cat] = true
		c.categories = append(c.categories, model.CategoryConfig{
			Category:   cat,
			CreditCost: rc.CreditCost,
			Cap:        rc.Cap,
			Color:      rc.Color,
		})
	}
	for _, cat := range model.Categories {
		if !seenCat[cat] {
			return nil, fmt.Errorf("catalog: category %s not configured", cat)
		}
	}
	slices.SortFunc(c.categories, func(a, b model.CategoryConfig) int {
		return a.Category.Rank() - b.Category.Rank()
	})

	for _, rc := range raw.Courses {
		if _, dup := c.courseIndex[rc.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate course id %d", rc.ID)
		}
		if rc.Name == "" {
			return nil, fmt.Errorf("catalog: course %d has no name", rc.ID)
		}
		cat := model.Category(rc.Category)
		if !cat.Valid() {
			return nil, fmt.Errorf("catalog: course %d has unknown category %q", rc.ID, rc.Category)
		}
		loc := model.Point{Lat: rc.Lat, Lon: rc.Lon}
		if err := model.Validate(loc); err != nil {
			return nil, fmt.Errorf("catalog: course %d location: %w", rc.ID, err)
		}
		status := rc.Status
		if status == "" {
			status = model.CourseStatusActive
		}
		c.courseIndex[rc.ID] = len(c.courses)
		c.courses = append(c.courses, model.Course{
			ID:       rc.ID,
			Name:     rc.Name,
			Category: cat,
			Area:     rc.Area,
			Location: loc,
			Status:   status,
		})
	}

	seenPkg := make(map[string]bool, len(raw.Packages))
	for _, rp := range raw.Packages {
		if rp.ID == "" || seenPkg[rp.ID] {
			return nil, fmt.Errorf("catalog: package id %q is empty or duplicated", rp.ID)
		}
		seenPkg[rp.ID] = true
		if rp.Credits <= 0 {
			return nil, fmt.Errorf("catalog: package %q needs positive credits", rp.ID)
		}
		price, err := decimal.NewFromString(rp.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog: package %q price: %w", rp.ID, err)
		}
		c.packages = append(c.packages, model.MembershipPackage{
			ID:          rp.ID,
			Name:        rp.Name,
			Title:       rp.Title,
			Credits:     rp.Credits,
			Price:       price,
			Recommended: rp.Recommended,
		})
	}

	seenAddOn := make(map[string]bool, len(raw.AddOns))
	for _, ra := range raw.AddOns {
		if ra.ID == "" || seenAddOn[ra.ID] {
			return nil, fmt.Errorf("catalog: add-on id %q is empty or duplicated", ra.ID)
		}
		seenAddOn[ra.ID] = true
		price, err := decimal.NewFromString(ra.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog: add-on %q price: %w", ra.ID, err)
		}
		c.addOns = append(c.addOns, model.AddOn{
			ID:          ra.ID,
			Name:        ra.Name,
			Description: ra.Description,
			Price:       price,
		})
	}

	return c, nil
}

// Course looks up a course by ID.
func (c *Catalog) Course(id int) (model.Course, bool) {
	i, ok := c.courseIndex[id]
	if !ok {
		return model.Course{}, false
	}
	return c.courses[i], true
}

// Category returns the policy for a tier.
func (c *Catalog) Category(cat model.Category) (model.CategoryConfig, bool) {
	for _, cfg := range c.categories {
		if cfg.Category == cat {
			return cfg, true
		}
	}
	return model.CategoryConfig{}, false
}

// Categories returns the tier policies in rank order.
func (c *Catalog) Categories() []model.CategoryConfig { return slices.Clone(c.categories) }

// Courses returns every course in catalog order.
func (c *Catalog) Courses() []model.Course { return slices.Clone(c.courses) }

// Package looks up a membership package by ID.
func (c *Catalog) Package(id string) (model.MembershipPackage, bool) {
	for _, p := range c.packages {
		if p.ID == id {
			return p, true
		}
	}
	return model.MembershipPackage{}, false
}

// Packages returns every package in catalog order.
func (c *Catalog) Packages() []model.MembershipPackage { return slices.Clone(c.packages) }

// AddOn looks up an add-on by ID.
func (c *Catalog) AddOn(id string) (model.AddOn, bool) {
	for _, a := range c.addOns {
		if a.ID == id {
			return a, true
		}
	}
	return model.AddOn{}, false
}

// AddOns returns every add-on in catalog order.
func (c *Catalog) AddOns() []model.AddOn { return slices.Clone(c.addOns) }

// TopUpPresets are the suggested top-up amounts in credits.
func (c *Catalog) TopUpPresets() []int { return slices.Clone(c.topUpPresets) }

// RadiusPresets are the suggested search radii in miles.
func (c *Catalog) RadiusPresets() []int { return slices.Clone(c.radiusPresets) }
