// Package io reads and writes family descriptions as JSON.
//
// # Overview
//
// Families usually come from an extraction step run over session
// transcripts, so the input is treated as untrusted and possibly broken.
// [DecodeFamily] accepts:
//
//   - Valid JSON in the English vocabulary used by [family.Family]
//   - The Spanish vocabulary of the extraction prompt ("personas",
//     "relaciones", "persona1_id", "estado_civil", ...)
//   - Payloads wrapped in a Markdown code fence
//   - Malformed JSON, repaired with [github.com/kaptinlin/jsonrepair]
//
// Fields are read with [github.com/tidwall/gjson], so unknown fields are
// ignored and each field may appear under any of its aliases.
//
// # JSON Format
//
//	{
//	  "persons": [
//	    {"id": "p1", "name": "Carlos", "gender": "male", "age": 52},
//	    {"id": "p2", "name": "Elena", "gender": "female",
//	     "conditions": ["identified-patient"]}
//	  ],
//	  "relationships": [
//	    {"kind": "couple", "participant1": "p1", "participant2": "p2",
//	     "maritalStatus": "married", "year": "1995",
//	     "relationshipQuality": "good-alliance"}
//	  ]
//	}
//
// The same family in the Spanish vocabulary:
//
//	{
//	  "personas": [
//	    {"id": "p1", "nombre": "Carlos", "genero": "masculino", "edad": 52},
//	    {"id": "p2", "nombre": "Elena", "genero": "femenino",
//	     "condiciones": ["consultante"]}
//	  ],
//	  "relaciones": [
//	    {"tipo": "pareja", "persona1_id": "p1", "persona2_id": "p2",
//	     "estado_civil": "casados", "fecha": 1995,
//	     "calidad_relacion": "alianza_buena"}
//	  ]
//	}
//
// # Leniency
//
// Unknown genders, orientations, conditions, statuses and qualities are
// dropped. "vivo": false marks a person deceased. Ages may be numbers or
// numeric strings. Unknown relationship kinds are passed through so that
// [family.Normalize] drops and counts them.
//
// # Export
//
// [WriteFamily] and [ExportFamily] write the English vocabulary, which
// round-trips through [ReadFamily].
package io
