/*
Package codec persists automata as versioned structured text.

The document shape is fixed and shared with existing saved files:

	{
	    "version": "1.0",
	    "states": ["q0", "q1"],
	    "alphabet": ["0", "1"],
	    "initial": "q0",
	    "finals": ["q1"],
	    "transitions": {
	        "q0": {"0": "q0", "1": "q1"},
	        "q1": {"0": "q1", "1": "q0"}
	    }
	}

Loading always goes through automaton.New, so a decoded document that is not
a complete automaton fails with the same structural errors as construction.
Documents that cannot be parsed or lack one of the five data fields fail with
a *FormatError. Unknown fields are ignored.

JSON is the primary format. YAML carries the same fields and is selected by
file extension in ReadFile and WriteFile.
*/
package codec
