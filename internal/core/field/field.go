// Package field contains the field model shared by introspection, rule
// derivation and rendering.
package field

import "strings"

// ColumnType classifies a column's storage type.
type ColumnType string

// Column types understood by rule derivation.
const (
	Integer            ColumnType = "integer"
	BigInt             ColumnType = "bigint"
	SmallInt           ColumnType = "smallint"
	TinyInt            ColumnType = "tinyint"
	UnsignedBigInteger ColumnType = "unsignedBigInteger"
	String             ColumnType = "string"
	Text               ColumnType = "text"
	Decimal            ColumnType = "decimal"
	Float              ColumnType = "float"
	Double             ColumnType = "double"
	Boolean            ColumnType = "boolean"
	Date               ColumnType = "date"
	DateTime           ColumnType = "datetime"
	Timestamp          ColumnType = "timestamp"
	Unknown            ColumnType = "unknown"
)

// IsIntegerFamily reports whether c is one of the signed integer types.
func (c ColumnType) IsIntegerFamily() bool {
	switch c {
	case Integer, BigInt, SmallInt, TinyInt:
		return true
	}
	return false
}

// IsDecimalFamily reports whether c is decimal, float or double.
func (c ColumnType) IsDecimalFamily() bool {
	switch c {
	case Decimal, Float, Double:
		return true
	}
	return false
}

// IsTemporal reports whether c is date, datetime or timestamp.
func (c ColumnType) IsTemporal() bool {
	switch c {
	case Date, DateTime, Timestamp:
		return true
	}
	return false
}

// ParseColumnType normalizes a driver or schema-builder type name.
// e.g. "varchar(255)" -> String, "bigint unsigned" -> UnsignedBigInteger,
// "tinyint(1)" -> Boolean, "timestamp without time zone" -> Timestamp.
func ParseColumnType(raw string) ColumnType {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return Unknown
	}

	// tinyint(1) is how MySQL stores booleans
	if strings.HasPrefix(t, "tinyint(1)") {
		return Boolean
	}

	unsigned := strings.Contains(t, "unsigned")
	if i := strings.IndexAny(t, "( "); i > 0 {
		t = t[:i]
	}

	switch t {
	case "int", "integer", "int4", "mediumint", "serial", "increments", "mediuminteger":
		return Integer
	case "bigint", "int8", "bigserial", "biginteger", "bigincrements", "foreignid":
		if unsigned || t == "bigincrements" || t == "foreignid" {
			return UnsignedBigInteger
		}
		return BigInt
	case "unsignedbiginteger":
		return UnsignedBigInteger
	case "unsignedinteger", "unsignedmediuminteger":
		return Integer
	case "smallint", "int2", "smallinteger", "unsignedsmallinteger", "smallincrements":
		return SmallInt
	case "tinyint", "tinyinteger", "unsignedtinyinteger", "tinyincrements":
		return TinyInt
	case "varchar", "char", "string", "character", "nvarchar", "nchar", "uuid", "ulid", "ipaddress", "macaddress":
		return String
	case "text", "longtext", "mediumtext", "tinytext", "json", "jsonb", "clob":
		return Text
	case "decimal", "numeric", "money", "unsigneddecimal":
		return Decimal
	case "float", "float4", "real":
		return Float
	case "double", "float8":
		return Double
	case "bool", "boolean", "bit":
		return Boolean
	case "date":
		return Date
	case "datetime", "datetimetz":
		return DateTime
	case "timestamp", "timestamptz", "timestamps":
		return Timestamp
	}

	if strings.HasPrefix(t, "character varying") {
		return String
	}
	return Unknown
}

// Enum holds the enumerated values of a field and its optional default.
type Enum struct {
	Values  []string
	Default string
}

// Spec describes one writable field of a model.
type Spec struct {
	Name   string
	Column ColumnType
	Enum   *Enum
}

// IsForeignKey reports whether the field name follows the `_id` convention.
func (f Spec) IsForeignKey() bool {
	return strings.HasSuffix(f.Name, "_id")
}

// IsEmail reports whether the field name ends with "email".
func (f Spec) IsEmail() bool {
	return strings.HasSuffix(f.Name, "email")
}

// HasEnum reports whether enumerated values are known for the field.
func (f Spec) HasEnum() bool {
	return f.Enum != nil && len(f.Enum.Values) > 0
}
