package detector

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"dupscan/src/config"
	"dupscan/src/model"
	"dupscan/src/service/similarity"
	"dupscan/src/util"
)

// serviceClass is one *Service class with its method-name surface
type serviceClass struct {
	name     string
	methods  []string
	location model.CodeLocation
}

// ServiceLayerDetector finds service classes whose public method surfaces
// overlap, the usual sign of two teams building the same service twice.
// Overlap is method-name-set Jaccard against the configured threshold.
type ServiceLayerDetector struct {
	BaseDetector
	cfg config.ServiceLayerConfig
}

// NewServiceLayerDetector creates a new service-layer overlap detector
func NewServiceLayerDetector(base BaseDetector, cfg config.ServiceLayerConfig) *ServiceLayerDetector {
	return &ServiceLayerDetector{BaseDetector: base, cfg: cfg}
}

// Kind returns the detector kind
func (d *ServiceLayerDetector) Kind() model.DetectorKind {
	return model.DetectorServiceLayer
}

// IsEnabled returns whether the detector is enabled
func (d *ServiceLayerDetector) IsEnabled() bool {
	return d.cfg.Enabled
}

// Detect runs service-layer overlap detection
func (d *ServiceLayerDetector) Detect(ctx context.Context, files []*model.ParsedFile) ([]model.DuplicationInstance, error) {
	if err := checkBudget(ctx); err != nil {
		return nil, err
	}

	services := collectServiceClasses(files)
	util.Debug("Service-layer detector: %d service classes", len(services))

	var instances []model.DuplicationInstance
	for i := 0; i < len(services); i++ {
		for j := i + 1; j < len(services); j++ {
			a, b := services[i], services[j]
			overlap := similarity.Jaccard(a.methods, b.methods)
			if overlap < d.cfg.OverlapThreshold {
				continue
			}

			shared := sharedMethods(a.methods, b.methods)
			instance, err := d.NewInstance(d.Kind(), overlap,
				[]model.CodeLocation{a.location, b.location},
				fmt.Sprintf("Services %q and %q share %d methods (%s)",
					a.name, b.name, len(shared), strings.Join(shared, ", ")))
			if err != nil {
				util.Warn("Service-layer detector: dropping finding: %v", err)
				continue
			}
			instance.Suggestion = fmt.Sprintf(
				"Extract the shared surface of %q and %q into a common interface or base service",
				a.name, b.name)
			instances = append(instances, instance)
		}
	}

	SortInstances(instances)
	util.Debug("Service-layer detector: %d findings", len(instances))
	return instances, nil
}

// collectServiceClasses keeps classes named *Service that expose at least one
// method, ordered by file then line for deterministic pairing.
func collectServiceClasses(files []*model.ParsedFile) []serviceClass {
	var services []serviceClass

	for _, file := range files {
		for _, cls := range file.Metadata.Classes {
			if !strings.HasSuffix(cls.Name, "Service") || len(cls.Methods) == 0 {
				continue
			}
			methods := make([]string, 0, len(cls.Methods))
			for _, m := range cls.Methods {
				methods = append(methods, strings.ToLower(m.Name))
			}
			services = append(services, serviceClass{
				name:    cls.Name,
				methods: methods,
				location: model.CodeLocation{
					FilePath:  file.Path,
					StartLine: cls.StartLine,
					EndLine:   cls.EndLine,
					Snippet:   file.Slice(cls.StartLine, cls.EndLine),
					Context:   fmt.Sprintf("class %s", cls.Name),
				},
			})
		}
	}

	sort.Slice(services, func(i, j int) bool {
		if services[i].location.FilePath != services[j].location.FilePath {
			return services[i].location.FilePath < services[j].location.FilePath
		}
		return services[i].location.StartLine < services[j].location.StartLine
	})
	return services
}

func sharedMethods(a, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, m := range a {
		inA[m] = true
	}
	var shared []string
	seen := make(map[string]bool)
	for _, m := range b {
		if inA[m] && !seen[m] {
			shared = append(shared, m)
			seen[m] = true
		}
	}
	sort.Strings(shared)
	return shared
}
