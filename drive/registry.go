package drive

import (
	"reflect"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag(tagName)
}

const tagName = "imprint"

// structPlan is the field layout of one struct type, built once per type.
type structPlan struct {
	name   string
	fields []fieldPlan
}

type fieldPlan struct {
	name  string
	index []int
	skip  bool
}

var (
	registry   = make(map[reflect.Type]*structPlan)
	registryMu sync.RWMutex
)

// planOf returns the cached plan for rt, building it on first use.
func planOf(rt reflect.Type) *structPlan {
	// Fast path: read-lock cache check
	registryMu.RLock()
	if plan, ok := registry[rt]; ok {
		registryMu.RUnlock()
		return plan
	}
	registryMu.RUnlock()

	return storePlan(rt, func() sentinel.Metadata { return scanType(rt) })
}

// primePlan builds the plan for T from sentinel's scan of the type.
func primePlan[T any]() {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return
	}
	registryMu.RLock()
	_, ok := registry[rt]
	registryMu.RUnlock()
	if ok {
		return
	}
	storePlan(rt, func() sentinel.Metadata { return sentinel.Scan[T]() })
}

func storePlan(rt reflect.Type, scan func() sentinel.Metadata) *structPlan {
	registryMu.Lock()
	defer registryMu.Unlock()

	// Double-check pattern
	if plan, ok := registry[rt]; ok {
		return plan
	}

	plan := buildPlan(rt, scan())
	registry[rt] = plan
	return plan
}

// Reset clears the plan registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[reflect.Type]*structPlan)
}

func buildPlan(rt reflect.Type, meta sentinel.Metadata) *structPlan {
	plan := &structPlan{name: rt.Name()}
	for _, field := range meta.Fields {
		if len(field.Index) == 0 || !rt.FieldByIndex(field.Index).IsExported() {
			continue
		}
		name, skip := fieldName(field.Name, field.Tags[tagName])
		plan.fields = append(plan.fields, fieldPlan{
			name:  name,
			index: field.Index,
			skip:  skip,
		})
	}
	return plan
}

// fieldName resolves the captured name of a field from its imprint tag.
// "-" marks the field as skipped.
func fieldName(goName, tag string) (string, bool) {
	if tag == "-" {
		return goName, true
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return goName, false
	}
	return name, false
}

// scanType reads struct metadata for types reached through reflection rather
// than through For.
func scanType(rt reflect.Type) sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return meta
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if tag, ok := sf.Tag.Lookup(tagName); ok {
			fm.Tags[tagName] = tag
		}
		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}
		meta.Fields = append(meta.Fields, fm)
	}
	return meta
}
