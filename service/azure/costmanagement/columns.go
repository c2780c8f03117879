package azurecostmanagement

import (
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
)

// ColumnDescriptor identifies one result column. It is either a PlainName or a
// TypedColumn; upstream responses use both depending on API version.
type ColumnDescriptor interface {
	ColumnName() string
	columnDescriptor()
}

// ColumnType is the semantic type attached to a TypedColumn, lower-cased
type ColumnType string

const (
	ColumnTypeDatetime ColumnType = "datetime"
	ColumnTypeDate     ColumnType = "date"
	ColumnTypeString   ColumnType = "string"
	ColumnTypeNumber   ColumnType = "number"
)

// ParseColumnType normalizes an upstream type label ("Datetime", "Number", ...)
func ParseColumnType(s string) ColumnType {
	return ColumnType(strings.ToLower(strings.TrimSpace(s)))
}

// PlainName is a bare column name without type information
type PlainName string

func (p PlainName) ColumnName() string { return string(p) }
func (PlainName) columnDescriptor()    {}

// TypedColumn is a column name with its semantic type
type TypedColumn struct {
	Name string
	Type ColumnType
}

func (c TypedColumn) ColumnName() string { return c.Name }
func (TypedColumn) columnDescriptor()    {}

// Role is the semantic meaning a normalized record needs from a column
type Role int

const (
	RoleDate Role = iota
	RoleCost
	RoleResourceGroup
)

func (r Role) String() string {
	switch r {
	case RoleDate:
		return "date"
	case RoleCost:
		return "cost"
	case RoleResourceGroup:
		return "resource_group"
	default:
		return "unknown"
	}
}

// MatchKind records which step of the fallback chain resolved a role
type MatchKind int

const (
	MatchCanonicalName MatchKind = iota
	MatchColumnType
	MatchFirstColumn
	MatchLastColumn
)

func (m MatchKind) String() string {
	switch m {
	case MatchCanonicalName:
		return "canonical_name"
	case MatchColumnType:
		return "column_type"
	case MatchFirstColumn:
		return "first_column"
	case MatchLastColumn:
		return "last_column"
	default:
		return "unknown"
	}
}

// Resolution is the column chosen for a role
type Resolution struct {
	Index int
	Name  string
	Match MatchKind
}

// Degraded reports whether the column was picked by position rather than identity
func (r Resolution) Degraded() bool {
	return r.Match == MatchFirstColumn || r.Match == MatchLastColumn
}

type positional int

const (
	noPosition positional = iota
	firstPosition
	lastPosition
)

type roleRule struct {
	canonical []string
	types     []ColumnType
	position  positional
}

var roleRules = map[Role]roleRule{
	RoleDate: {
		canonical: []string{"UsageDate", "Date", "BillingMonth", "UsageDateTime"},
		types:     []ColumnType{ColumnTypeDatetime, ColumnTypeDate},
		position:  firstPosition,
	},
	RoleCost: {
		canonical: []string{"Cost", "totalCost", "PreTaxCost", "CostUSD", "PreTaxCostUSD"},
		position:  lastPosition,
	},
	RoleResourceGroup: {
		canonical: []string{"ResourceGroupName", "ResourceGroup"},
	},
}

// Resolve locates the column for role: canonical names in preference order, then
// descriptor type, then the role's positional fallback. ok is false only when every
// step fails, which for the date and cost roles means there are no columns at all.
func Resolve(columns []ColumnDescriptor, role Role) (Resolution, bool) {
	rule, known := roleRules[role]
	if !known {
		return Resolution{}, false
	}

	for _, name := range rule.canonical {
		for i, col := range columns {
			if col != nil && strings.EqualFold(col.ColumnName(), name) {
				return Resolution{Index: i, Name: col.ColumnName(), Match: MatchCanonicalName}, true
			}
		}
	}

	for _, want := range rule.types {
		for i, col := range columns {
			typed, ok := col.(TypedColumn)
			if ok && typed.Type == want {
				return Resolution{Index: i, Name: typed.Name, Match: MatchColumnType}, true
			}
		}
	}

	if len(columns) == 0 {
		return Resolution{}, false
	}

	switch rule.position {
	case firstPosition:
		return Resolution{Index: 0, Name: columnName(columns[0]), Match: MatchFirstColumn}, true
	case lastPosition:
		last := len(columns) - 1
		return Resolution{Index: last, Name: columnName(columns[last]), Match: MatchLastColumn}, true
	default:
		return Resolution{}, false
	}
}

// ColumnNames lists the identifiers in order, for logging
func ColumnNames(columns []ColumnDescriptor) []string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = columnName(col)
	}
	return names
}

// FromQueryColumns converts SDK column descriptors. A column without a type becomes
// a PlainName; indices are preserved so rows stay aligned.
func FromQueryColumns(columns []*armcostmanagement.QueryColumn) []ColumnDescriptor {
	result := make([]ColumnDescriptor, 0, len(columns))
	for _, col := range columns {
		if col == nil {
			result = append(result, PlainName(""))
			continue
		}

		name := ""
		if col.Name != nil {
			name = *col.Name
		}

		if col.Type == nil || strings.TrimSpace(*col.Type) == "" {
			result = append(result, PlainName(name))
			continue
		}

		result = append(result, TypedColumn{Name: name, Type: ParseColumnType(*col.Type)})
	}
	return result
}

func columnName(col ColumnDescriptor) string {
	if col == nil {
		return ""
	}
	return col.ColumnName()
}
