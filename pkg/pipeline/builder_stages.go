package pipeline

import "github.com/pkg/errors"

// Operator names appended by the Builder.
const (
	OpMatch           = "$match"
	OpGroup           = "$group"
	OpSort            = "$sort"
	OpLimit           = "$limit"
	OpSkip            = "$skip"
	OpProject         = "$project"
	OpAddFields       = "$addFields"
	OpSet             = "$set"
	OpUnset           = "$unset"
	OpLookup          = "$lookup"
	OpUnwind          = "$unwind"
	OpCount           = "$count"
	OpFacet           = "$facet"
	OpBucket          = "$bucket"
	OpBucketAuto      = "$bucketAuto"
	OpSortByCount     = "$sortByCount"
	OpReplaceRoot     = "$replaceRoot"
	OpReplaceWith     = "$replaceWith"
	OpSample          = "$sample"
	OpGraphLookup     = "$graphLookup"
	OpUnionWith       = "$unionWith"
	OpRedact          = "$redact"
	OpOut             = "$out"
	OpMerge           = "$merge"
	OpDensify         = "$densify"
	OpFill            = "$fill"
	OpSetWindowFields = "$setWindowFields"
	OpGeoNear         = "$geoNear"
	OpCollStats       = "$collStats"
	OpIndexStats      = "$indexStats"
)

func (b *Builder) Match(condition any) *Builder { return b.appendOperator(OpMatch, condition) }

func (b *Builder) Group(expression any) *Builder { return b.appendOperator(OpGroup, expression) }

func (b *Builder) Sort(arg any) *Builder { return b.appendOperator(OpSort, arg) }

// Limit appends {$limit: n}. A negative n is recorded as ErrInvalidArgument.
func (b *Builder) Limit(n int64) *Builder { return b.appendCount(OpLimit, n) }

// Skip appends {$skip: n}. A negative n is recorded as ErrInvalidArgument.
func (b *Builder) Skip(n int64) *Builder { return b.appendCount(OpSkip, n) }

func (b *Builder) Project(projection any) *Builder { return b.appendOperator(OpProject, projection) }

func (b *Builder) AddFields(fields any) *Builder { return b.appendOperator(OpAddFields, fields) }

func (b *Builder) Set(fields any) *Builder { return b.appendOperator(OpSet, fields) }

// Unset takes a field name or a list of field names.
func (b *Builder) Unset(fields any) *Builder { return b.appendOperator(OpUnset, fields) }

func (b *Builder) Lookup(arg any) *Builder { return b.appendOperator(OpLookup, arg) }

// Unwind takes a field path such as "$items" or a document of unwind options.
func (b *Builder) Unwind(arg any) *Builder { return b.appendOperator(OpUnwind, arg) }

func (b *Builder) Count(field string) *Builder { return b.appendOperator(OpCount, field) }

func (b *Builder) Facet(facets any) *Builder { return b.appendOperator(OpFacet, facets) }

func (b *Builder) Bucket(arg any) *Builder { return b.appendOperator(OpBucket, arg) }

func (b *Builder) BucketAuto(arg any) *Builder { return b.appendOperator(OpBucketAuto, arg) }

func (b *Builder) SortByCount(expression any) *Builder {
	return b.appendOperator(OpSortByCount, expression)
}

func (b *Builder) ReplaceRoot(arg any) *Builder { return b.appendOperator(OpReplaceRoot, arg) }

func (b *Builder) ReplaceWith(expression any) *Builder {
	return b.appendOperator(OpReplaceWith, expression)
}

// Sample appends {$sample: {size: n}}. A negative size is recorded as ErrInvalidArgument.
func (b *Builder) Sample(size int64) *Builder {
	if size < 0 && b.err == nil {
		return b.fail(errors.Wrapf(ErrInvalidArgument, "%s size must be non-negative, got %d", OpSample, size))
	}

	return b.appendOperator(OpSample, map[string]any{"size": size})
}

func (b *Builder) GraphLookup(arg any) *Builder { return b.appendOperator(OpGraphLookup, arg) }

// UnionWith takes a collection name or a document with coll and pipeline.
func (b *Builder) UnionWith(arg any) *Builder { return b.appendOperator(OpUnionWith, arg) }

func (b *Builder) Redact(expression any) *Builder { return b.appendOperator(OpRedact, expression) }

// Out takes a collection name or a document with db and coll.
func (b *Builder) Out(target any) *Builder { return b.appendOperator(OpOut, target) }

func (b *Builder) Merge(arg any) *Builder { return b.appendOperator(OpMerge, arg) }

func (b *Builder) Densify(arg any) *Builder { return b.appendOperator(OpDensify, arg) }

func (b *Builder) Fill(arg any) *Builder { return b.appendOperator(OpFill, arg) }

func (b *Builder) SetWindowFields(arg any) *Builder {
	return b.appendOperator(OpSetWindowFields, arg)
}

func (b *Builder) GeoNear(arg any) *Builder { return b.appendOperator(OpGeoNear, arg) }

func (b *Builder) CollStats(arg any) *Builder { return b.appendOperator(OpCollStats, arg) }

// IndexStats appends {$indexStats: {}}.
func (b *Builder) IndexStats() *Builder { return b.appendOperator(OpIndexStats, map[string]any{}) }
