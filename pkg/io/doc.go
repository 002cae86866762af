// Package io provides JSON import and export for extracted class models.
//
// # Overview
//
// A model export captures everything the extractor recorded, including the
// relations that the draw.io renderer later drops as unresolvable. It is
// useful for:
//
//   - Checking what the type heuristics made of a file
//   - Feeding class data to other tools
//   - Re-rendering an edited model without the Python source
//
// # JSON Format
//
//	{
//	  "classes": [
//	    {
//	      "id": "Class_1",
//	      "name": "Employee",
//	      "bases": ["Person"],
//	      "attributes": [
//	        {"id": "Class_1_2", "name": "manager", "primary": "Call", "secondary": "Manager"}
//	      ],
//	      "methods": [
//	        {"id": "Class_1_3", "name": "pay", "params": ["amount"], "returns": "None"}
//	      ],
//	      "relations": [
//	        {"id": "Class_1_4", "kind": "composition", "target": "Manager", "source": "manager"}
//	      ]
//	    }
//	  ]
//	}
//
// Empty bases, attributes, methods and relations are omitted, as are empty
// secondary types, docstrings and relation sources.
//
// # Round-Trip
//
// [ReadJSON] accepts what [WriteJSON] produces, keeping every id, so a
// re-imported model renders to the same draw.io document.
package io
