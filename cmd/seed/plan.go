package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

var folderPrefixes = []string{
	"Documents", "Projects", "Reports", "Assets", "Media", "Archive",
	"Backup", "Temp", "Work", "Personal", "Client", "Data", "Images",
	"Videos", "Music", "Downloads", "Templates", "Configs", "Logs",
	"Build", "Dist", "Source", "Tests", "Docs", "Resources", "Public",
}

var filePrefixes = []string{
	"report", "document", "invoice", "contract", "presentation", "data",
	"config", "readme", "notes", "summary", "analysis", "proposal",
	"budget", "plan", "schedule", "image", "video", "backup", "export",
}

var fileExtensions = []string{
	".pdf", ".docx", ".xlsx", ".txt", ".md", ".json", ".csv",
	".png", ".jpg", ".mp4", ".zip", ".html", ".xml", ".yaml",
}

// Plan controls the volume and shape of generated data
type Plan struct {
	Folders  int    `yaml:"folders"`
	Files    int    `yaml:"files"`
	MaxDepth int    `yaml:"max_depth"`
	Batch    int    `yaml:"batch"`
	Roots    int    `yaml:"roots"`
	Seed     uint64 `yaml:"seed"`
}

// DefaultPlan matches the data set the explorer is usually benchmarked against
func DefaultPlan() Plan {
	return Plan{
		Folders:  10_000,
		Files:    50_000,
		MaxDepth: 8,
		Batch:    1000,
		Roots:    20,
	}
}

// Validate checks the plan can be generated
func (p Plan) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Folders, validation.Min(0)),
		validation.Field(&p.Files, validation.Min(0)),
		validation.Field(&p.MaxDepth, validation.Required, validation.Min(1)),
		validation.Field(&p.Batch, validation.Required, validation.Min(1)),
		validation.Field(&p.Roots, validation.Min(0)),
	)
	if err != nil {
		return err
	}
	if p.Files > 0 && p.Folders == 0 {
		return fmt.Errorf("files need at least one folder")
	}
	return nil
}

// loadPlan overlays a YAML plan file on top of base
func loadPlan(path string, base Plan) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read plan: %w", err)
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("parse plan: %w", err)
	}
	return base, nil
}

// generator produces random names and depth-bounded parents
type generator struct {
	rng      *rand.Rand
	maxDepth int
	roots    int
	depths   []int // depth of each generated folder, by index
}

func newGenerator(plan Plan) *generator {
	seed := plan.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &generator{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		maxDepth: plan.MaxDepth,
		roots:    plan.Roots,
	}
}

func (g *generator) folderName(index int) string {
	prefix := folderPrefixes[g.rng.IntN(len(folderPrefixes))]
	return fmt.Sprintf("%s_%d_%d", prefix, g.rng.IntN(999)+1, index)
}

func (g *generator) fileName(index int) string {
	prefix := filePrefixes[g.rng.IntN(len(filePrefixes))]
	ext := fileExtensions[g.rng.IntN(len(fileExtensions))]
	return fmt.Sprintf("%s_%d_%d%s", prefix, g.rng.IntN(9999)+1, index, ext)
}

// nextParent picks a parent for folder index among the first `available`
// folders, or -1 for a root. The first g.roots folders are always roots,
// and a parent is only taken when it is shallower than maxDepth.
func (g *generator) nextParent(index, available int) int {
	parent := -1
	if index >= g.roots && available > 0 {
		for attempt := 0; attempt < 10; attempt++ {
			candidate := g.rng.IntN(available)
			if g.depths[candidate] < g.maxDepth {
				parent = candidate
				break
			}
		}
	}

	depth := 1
	if parent >= 0 {
		depth = g.depths[parent] + 1
	}
	g.depths = append(g.depths, depth)
	return parent
}
