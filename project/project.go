// Package project implements the configuration resolution engine: Project,
// ProjectConfig, ConfigSelector (here named Selector) and the resolve
// algorithm that merges transitively-linked option contributions according
// to transitivity, project-type, configuration-name and target-OS filters.
//
// Grounded on the original source's core/project.h (Project,
// internalResolve) and build.h's fuller per-bucket-links ProjectConfig
// shape; where the two original_source snapshots disagree on merge order,
// spec.md §4.3's explicit four-step algorithm is followed.
package project

import (
	"fmt"
	"path"
	"sort"

	"go.kiln.build/kiln/option"
	"go.kiln.build/kiln/stdopt"
	"go.kiln.build/kiln/stringid"
)

// Type is a project's role, determining which toolchain pipeline (if any)
// materializes it.
type Type int

const (
	Executable Type = iota
	StaticLib
	SharedLib
	Command
)

func (t Type) String() string {
	switch t {
	case Executable:
		return "Executable"
	case StaticLib:
		return "StaticLib"
	case SharedLib:
		return "SharedLib"
	case Command:
		return "Command"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Transitivity controls whether a selector bucket's contribution is
// visible to the project itself, to consumers via a link, or both.
type Transitivity int

const (
	// Local contributions apply only when resolving the project itself.
	Local Transitivity = iota
	// Public contributions apply both locally and to consumers.
	Public
	// PublicOnly contributions apply only to consumers, never locally.
	PublicOnly
)

// OperatingSystem is the target-OS selector filter.
type OperatingSystem int

const (
	OSAny OperatingSystem = iota
	OSLinux
	OSDarwin
	OSWindows
)

// Selector is ConfigSelector: a filter over (transitivity, project-type,
// config-name, target-OS). Any field left unset (the zero "has" flag)
// means wildcard. Selector is comparable, so it can key a map directly;
// Less gives it the total order spec.md requires for a sorted bucket map.
type Selector struct {
	hasTransitivity bool
	transitivity    Transitivity
	hasType         bool
	projectType     Type
	hasName         bool
	name            stringid.ID
	hasTargetOS     bool
	targetOS        OperatingSystem
}

// WithTransitivity returns a copy of s with its transitivity field set. It
// errors if the field was already set — combining two selectors on the
// same field is a configuration error (spec.md §3/§7).
func (s Selector) WithTransitivity(t Transitivity) (Selector, error) {
	if s.hasTransitivity {
		return Selector{}, ErrTransitivityAlreadySet
	}
	s.hasTransitivity = true
	s.transitivity = t
	return s, nil
}

// WithType returns a copy of s with its project-type field set.
func (s Selector) WithType(t Type) (Selector, error) {
	if s.hasType {
		return Selector{}, ErrTypeAlreadySet
	}
	s.hasType = true
	s.projectType = t
	return s, nil
}

// WithName returns a copy of s with its configuration-name field set.
func (s Selector) WithName(name string) (Selector, error) {
	if s.hasName {
		return Selector{}, ErrNameAlreadySet
	}
	s.hasName = true
	s.name = stringid.Intern(name)
	return s, nil
}

// WithTargetOS returns a copy of s with its target-OS field set.
func (s Selector) WithTargetOS(os OperatingSystem) (Selector, error) {
	if s.hasTargetOS {
		return Selector{}, ErrTargetOSAlreadySet
	}
	s.hasTargetOS = true
	s.targetOS = os
	return s, nil
}

// Less gives Selector the total, stable order spec.md requires for keying
// a sorted map of buckets. Unset ("wildcard") fields sort before set ones,
// mirroring std::optional's ordering in the original source.
func (s Selector) Less(other Selector) bool {
	if s.hasTransitivity != other.hasTransitivity {
		return !s.hasTransitivity
	}
	if s.hasTransitivity && s.transitivity != other.transitivity {
		return s.transitivity < other.transitivity
	}
	if s.hasType != other.hasType {
		return !s.hasType
	}
	if s.hasType && s.projectType != other.projectType {
		return s.projectType < other.projectType
	}
	if s.hasName != other.hasName {
		return !s.hasName
	}
	if s.hasName && s.name.String() != other.name.String() {
		return s.name.String() < other.name.String()
	}
	if s.hasTargetOS != other.hasTargetOS {
		return !s.hasTargetOS
	}
	if s.hasTargetOS && s.targetOS != other.targetOS {
		return s.targetOS < other.targetOS
	}
	return false
}

func (s Selector) matches(local bool, projectType *Type, configName stringid.ID, targetOS OperatingSystem) bool {
	if local {
		if s.hasTransitivity && s.transitivity == PublicOnly {
			return false
		}
	} else {
		if !s.hasTransitivity || s.transitivity == Local {
			return false
		}
	}
	if s.hasType {
		if projectType == nil || s.projectType != *projectType {
			return false
		}
	}
	if s.hasName && s.name != configName {
		return false
	}
	if s.hasTargetOS && s.targetOS != targetOS {
		return false
	}
	return true
}

// ProjectConfig is an (OptionCollection, ordered link list) pair: a bucket
// of options plus the projects it links against, scoped to whatever
// selector keys it in a Project (or the project's own base bucket).
type ProjectConfig struct {
	Options *option.Collection
	Links   []*Project
}

// NewProjectConfig returns an empty ProjectConfig.
func NewProjectConfig() *ProjectConfig {
	return &ProjectConfig{Options: option.New()}
}

// Project is a name, an optional type, a base ProjectConfig, and a sorted
// (by Selector.Less) map of Selector to additional ProjectConfig buckets.
type Project struct {
	Name    string
	Type    Type
	HasType bool
	Base    *ProjectConfig
	Configs map[Selector]*ProjectConfig
}

// New returns a Project with the given name and type.
func New(name string, t Type) *Project {
	return &Project{Name: name, Type: t, HasType: true, Base: NewProjectConfig(), Configs: map[Selector]*ProjectConfig{}}
}

// NewGroup returns an untyped Project: a group/alias that contributes
// nothing to materialization but participates in link traversal.
func NewGroup(name string) *Project {
	return &Project{Name: name, Base: NewProjectConfig(), Configs: map[Selector]*ProjectConfig{}}
}

// At returns (creating if necessary) the ProjectConfig bucket for selector.
func (p *Project) At(selector Selector) *ProjectConfig {
	cfg, ok := p.Configs[selector]
	if !ok {
		cfg = NewProjectConfig()
		p.Configs[selector] = cfg
	}
	return cfg
}

// Link appends a project to the base bucket's link list.
func (p *Project) Link(dep *Project) {
	p.Base.Links = append(p.Base.Links, dep)
}

// sortedSelectors returns p.Configs' keys sorted by Less.
func (p *Project) sortedSelectors() []Selector {
	sels := make([]Selector, 0, len(p.Configs))
	for s := range p.Configs {
		sels = append(sels, s)
	}
	sort.Slice(sels, func(i, j int) bool { return sels[i].Less(sels[j]) })
	return sels
}

// AllLinks returns every project p links against: the base bucket's links
// followed by each selector-keyed bucket's links, in sorted-selector order.
// Used by emitters for link-discovery traversal (spec.md §5: "emission is
// the DFS link-discovery order so that leaves precede consumers").
func (p *Project) AllLinks() []*Project {
	links := append([]*Project{}, p.Base.Links...)
	for _, sel := range p.sortedSelectors() {
		links = append(links, p.Configs[sel].Links...)
	}
	return links
}

// CycleError reports a cycle detected while traversing Project.links.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	s := "cycle detected in project links: "
	for i, n := range e.Path {
		if i > 0 {
			s += " -> "
		}
		s += n
	}
	return s
}

// Resolve is Project::resolve: it gathers applicable selector buckets,
// traverses links transitively, merges per spec.md §4.3's four-step order,
// and deduplicates once at the end.
func (p *Project) Resolve(projectType *Type, configName string, targetOS OperatingSystem) (*option.Collection, error) {
	configID := stringid.Intern(configName)
	visiting := map[*Project]bool{}
	result, err := p.internalResolve(projectType, configID, targetOS, true, visiting, nil)
	if err != nil {
		return nil, err
	}
	result.Deduplicate()
	return result, nil
}

func (p *Project) internalResolve(projectType *Type, configID stringid.ID, targetOS OperatingSystem, local bool, visiting map[*Project]bool, stack []string) (*option.Collection, error) {
	if visiting[p] {
		return nil, &CycleError{Path: append(append([]string{}, stack...), p.Name)}
	}
	visiting[p] = true
	stack = append(stack, p.Name)
	defer delete(visiting, p)

	result := option.New()

	// Step 1: all transitively resolved link contributions declared on the
	// base bucket, in link-declaration order, depth-first.
	for _, link := range p.Base.Links {
		sub, err := link.internalResolve(projectType, configID, targetOS, false, visiting, stack)
		if err != nil {
			return nil, err
		}
		result.Combine(sub)
	}

	matching := make([]*ProjectConfig, 0, len(p.Configs))
	for _, sel := range p.sortedSelectors() {
		if sel.matches(local, projectType, configID, targetOS) {
			matching = append(matching, p.Configs[sel])
		}
	}

	// Step 2: links declared inside the selected buckets, same recursion
	// rules, in the same sorted-selector order.
	for _, bucket := range matching {
		for _, link := range bucket.Links {
			sub, err := link.internalResolve(projectType, configID, targetOS, false, visiting, stack)
			if err != nil {
				return nil, err
			}
			result.Combine(sub)
		}
	}

	// Step 3: if local, the project's own base-bucket options.
	if local {
		result.Combine(p.Base.Options)
	}

	// Step 4: each selected bucket's options, in sorted selector order.
	for _, bucket := range matching {
		result.Combine(bucket.Options)
	}

	return result, nil
}

// OutputPath computes the project's final output path from its resolved
// options. If OutputPath was set directly, it wins outright. Otherwise it
// composes OutputDir/OutputPrefix+stem+OutputSuffix+OutputExtension, where
// stem defaults to the project's name.
//
// The original source's calcOutputPath appends OutputStem a second time
// instead of OutputExtension at the end — almost certainly a bug, flagged
// in spec.md §9. This implementation uses the corrected composition.
func (p *Project) OutputPath(resolved *option.Collection) string {
	if explicit := option.Get(resolved, stdopt.OutputPath); explicit != "" {
		return explicit
	}
	stem := option.Get(resolved, stdopt.OutputStem)
	if stem == "" {
		stem = p.Name
	}
	name := option.Get(resolved, stdopt.OutputPrefix) + stem +
		option.Get(resolved, stdopt.OutputSuffix) + option.Get(resolved, stdopt.OutputExtension)
	return path.Join(option.Get(resolved, stdopt.OutputDir), name)
}
