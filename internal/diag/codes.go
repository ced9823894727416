// Copyright 2026 The pdlc Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package diag

// Code is a stable, permanent diagnostic identifier. External tools match
// on Code, never on Message, so codes are never renumbered or reused. E50
// is the enumeration's one true gap and is intentionally left unnamed;
// every other code between E1 and E53 is assigned and load-bearing.
type Code int

const (
	_ Code = iota

	E1  // DuplicateDeclIdentifier
	E2  // RecursiveDecl
	E3  // UndeclaredGroupIdentifier
	E4  // InvalidGroupIdentifier
	E5  // UndeclaredTypeIdentifier
	E6  // InvalidTypeIdentifier
	E7  // UndeclaredParentIdentifier
	E8  // InvalidParentIdentifier
	E9  // UndeclaredTestIdentifier
	E10 // InvalidTestIdentifier

	E11 // DuplicateFieldIdentifier

	E12 // DuplicateTagIdentifier
	E13 // DuplicateTagValue
	E14 // InvalidTagValue

	E15 // UndeclaredConstraintIdentifier
	E16 // ArrayConstraintIdentifier
	E17 // MisusedConstraintValue (scalar constraint given a tag_id instead of a value)
	E18 // InvalidConstraintValue
	E19 // MissingConstraintTag (enum-typedef constraint given a value instead of a tag_id)
	E20 // UndeclaredConstraintTag
	E21 // InvalidConstraintTypedef (typedef constraint target is not an Enum)
	E22 // DuplicateConstraintIdentifier

	E23 // DuplicateSizeField
	E24 // UndeclaredSizeIdentifier
	E25 // InvalidSizeIdentifier
	E26 // DuplicateCountField
	E27 // UndeclaredCountIdentifier
	E28 // InvalidCountIdentifier
	E29 // DuplicateElementSizeField
	E30 // UndeclaredElementSizeIdentifier
	E31 // InvalidElementSizeIdentifier

	E32 // FixedValueOutOfRange
	E33 // UndeclaredFixedEnumIdentifier
	E34 // InvalidFixedEnumTag (tag_id not among the enum's tags)
	E35 // InvalidFixedEnumIdentifier (identifier does not name an Enum)

	E36 // DuplicatePayloadField
	E37 // MissingPayloadField

	E38 // RedundantArraySize
	E39 // InvalidPaddingField

	E40 // InvalidTagRange
	E41 // DuplicateTagRange
	E42 // InvalidRangeTagConstraint (constraint targets a Range tag, not a leaf)
	E43 // TagValueInDeclaredRange
	E44 // DuplicateDefaultTag

	E45 // InvalidOptionalFieldKind
	E46 // UndeclaredConditionIdentifier
	E47 // InvalidConditionIdentifier
	E48 // InvalidConditionValue
	E49 // OptionalConditionIdentifier (condition field is itself optional)

	E51 = Code(51) // InvalidFieldOffset
	E52 = Code(52) // InvalidPacketSize
	E53 = Code(53) // InvalidFieldSize

	// E54 and E55 cover the file-level endianness declaration. They extend,
	// rather than renumber, the closed E1..E53 set.
	E54 = Code(54) // MissingEndiannessDeclaration
	E55 = Code(55) // DuplicateEndiannessDeclaration
)

var codeNames = map[Code]string{
	E1: "E1", E2: "E2", E3: "E3", E4: "E4", E5: "E5", E6: "E6", E7: "E7",
	E8: "E8", E9: "E9", E10: "E10", E11: "E11", E12: "E12", E13: "E13",
	E14: "E14", E15: "E15", E16: "E16", E17: "E17", E18: "E18", E19: "E19",
	E20: "E20", E21: "E21", E22: "E22", E23: "E23", E24: "E24", E25: "E25",
	E26: "E26", E27: "E27", E28: "E28", E29: "E29", E30: "E30", E31: "E31",
	E32: "E32", E33: "E33", E34: "E34", E35: "E35", E36: "E36", E37: "E37",
	E38: "E38", E39: "E39", E40: "E40", E41: "E41", E42: "E42", E43: "E43",
	E44: "E44", E45: "E45", E46: "E46", E47: "E47", E48: "E48", E49: "E49",
	E51: "E51", E52: "E52", E53: "E53", E54: "E54", E55: "E55",
}

// String renders the code's stable external name, e.g. "E52".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "E0"
}
