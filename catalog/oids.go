package catalog

import "github.com/Sednai/pljava/datum"

// Well-known native type OIDs. These match the engine's built-in catalog
// numbering so declarations and tests read naturally.
const (
	BoolOid    datum.Oid = 16
	Int8Oid    datum.Oid = 20
	Int2Oid    datum.Oid = 21
	Int4Oid    datum.Oid = 23
	TextOid    datum.Oid = 25
	Float4Oid  datum.Oid = 700
	Float8Oid  datum.Oid = 701
	VarcharOid datum.Oid = 1043
	VoidOid    datum.Oid = 2278

	BoolArrayOid   datum.Oid = 1000
	Int2ArrayOid   datum.Oid = 1005
	Int4ArrayOid   datum.Oid = 1007
	TextArrayOid   datum.Oid = 1009
	Int8ArrayOid   datum.Oid = 1016
	Float4ArrayOid datum.Oid = 1021
	Float8ArrayOid datum.Oid = 1022
)

// BuiltinTypes returns storage descriptions for the built-in scalar and
// array types. Memory catalogs seed themselves with these.
func BuiltinTypes() []TypeInfo {
	return []TypeInfo{
		{Oid: BoolOid, Length: 1, Align: AlignChar, ByValue: true},
		{Oid: Int2Oid, Length: 2, Align: AlignShort, ByValue: true},
		{Oid: Int4Oid, Length: 4, Align: AlignInt, ByValue: true},
		{Oid: Int8Oid, Length: 8, Align: AlignDouble, ByValue: true},
		{Oid: Float4Oid, Length: 4, Align: AlignInt, ByValue: true},
		{Oid: Float8Oid, Length: 8, Align: AlignDouble, ByValue: true},
		{Oid: TextOid, Length: -1, Align: AlignInt, ByValue: false},
		{Oid: VarcharOid, Length: -1, Align: AlignInt, ByValue: false},

		{Oid: BoolArrayOid, Length: -1, Align: AlignInt, ByValue: false, Element: BoolOid},
		{Oid: Int2ArrayOid, Length: -1, Align: AlignInt, ByValue: false, Element: Int2Oid},
		{Oid: Int4ArrayOid, Length: -1, Align: AlignInt, ByValue: false, Element: Int4Oid},
		{Oid: Int8ArrayOid, Length: -1, Align: AlignInt, ByValue: false, Element: Int8Oid},
		{Oid: Float4ArrayOid, Length: -1, Align: AlignInt, ByValue: false, Element: Float4Oid},
		{Oid: Float8ArrayOid, Length: -1, Align: AlignInt, ByValue: false, Element: Float8Oid},
		{Oid: TextArrayOid, Length: -1, Align: AlignInt, ByValue: false, Element: TextOid},
	}
}
