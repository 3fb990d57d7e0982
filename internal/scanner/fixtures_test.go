package scanner

import (
	"fmt"

	"github.com/toyz/axonmeta/internal/annotations"
	"github.com/toyz/axonmeta/internal/decl"
	"github.com/toyz/axonmeta/internal/models"
)

type logEntry struct {
	level   string
	message string
}

type recordingLogger struct {
	entries []logEntry
}

func (l *recordingLogger) Debug(format string, args ...interface{}) {
	l.entries = append(l.entries, logEntry{"debug", fmt.Sprintf(format, args...)})
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.entries = append(l.entries, logEntry{"info", fmt.Sprintf(format, args...)})
}

func (l *recordingLogger) Warn(format string, args ...interface{}) {
	l.entries = append(l.entries, logEntry{"warn", fmt.Sprintf(format, args...)})
}

func (l *recordingLogger) messages(level string) []string {
	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.message)
		}
	}
	return out
}

func ann(marker annotations.Marker, args ...string) *annotations.Annotation {
	return &annotations.Annotation{Marker: marker, Args: args, Parameters: map[string]interface{}{}}
}

func withParam(a *annotations.Annotation, name string, value interface{}) *annotations.Annotation {
	a.Parameters[name] = value
	return a
}

func moduleDecl(pkg, name string, scan ...string) *decl.Declaration {
	d := &decl.Declaration{
		SimpleName:    name,
		QualifiedName: pkg + "." + name,
		PackagePath:   pkg,
		Kind:          decl.KindStruct,
		Resolvable:    true,
		Annotations:   []*annotations.Annotation{ann(annotations.ModuleMarker)},
	}
	if len(scan) > 0 {
		var args []string
		if scan[0] != "" {
			args = []string{scan[0]}
		}
		d.Annotations = append(d.Annotations, ann(annotations.ComponentScanMarker, args...))
	}
	return d
}

func classDecl(pkg, name string, params ...decl.Param) *decl.Declaration {
	return &decl.Declaration{
		SimpleName:    name,
		QualifiedName: pkg + "." + name,
		PackagePath:   pkg,
		Kind:          decl.KindStruct,
		Resolvable:    true,
		Annotations:   []*annotations.Annotation{ann(annotations.SingleMarker)},
		Params:        params,
	}
}

func funcDecl(pkg, name string, results []string, params ...decl.Param) *decl.Declaration {
	return &decl.Declaration{
		SimpleName:    name,
		QualifiedName: pkg + "." + name,
		PackagePath:   pkg,
		Kind:          decl.KindFunc,
		Resolvable:    true,
		Annotations:   []*annotations.Annotation{ann(annotations.FactoryMarker)},
		Params:        params,
		Results:       results,
	}
}

func propertyField(name, typ, key string) decl.Param {
	return decl.Param{
		Name:        name,
		Type:        typ,
		Annotations: []*annotations.Annotation{ann(annotations.PropertyMarker, key)},
	}
}

func propertyValueDecl(pkg, name, id string) *decl.Declaration {
	return &decl.Declaration{
		SimpleName:    name,
		QualifiedName: pkg + "." + name,
		PackagePath:   pkg,
		Kind:          decl.KindVar,
		Resolvable:    true,
		Annotations:   []*annotations.Annotation{ann(annotations.PropertyValueMarker, id)},
	}
}

func externalDecl(genPkg, name, target string) *decl.Declaration {
	var args []string
	if target != "" {
		args = []string{target}
	}
	return &decl.Declaration{
		SimpleName:    name,
		QualifiedName: genPkg + "." + name,
		PackagePath:   genPkg,
		Kind:          decl.KindFunc,
		Resolvable:    true,
		Annotations:   []*annotations.Annotation{ann(annotations.DefinitionMarker, args...)},
		Results:       []string{"any"},
	}
}

func scanModule(name, scope string) *models.Module {
	m := models.NewModule(name, "app")
	m.ComponentScan = &models.ComponentScan{PackageName: scope}
	return m
}

func labels(defs []*models.Definition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Label)
	}
	return out
}
