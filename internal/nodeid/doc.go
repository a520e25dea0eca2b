/*
Package nodeid provides a structured, type-safe representation for the
identifiers of variables in the address space.

A configured identifier is classified exactly once, in this order:

 1. a native integer becomes a numeric identifier (`i=<n>`);
 2. a string that parses as a GUID becomes a GUID identifier (`g=<uuid>`);
 3. anything else becomes a string identifier (`s=<text>`). Values that were
    neither integers nor strings are coerced with their string form and
    reported with a *TypeError.

This package centralizes all formatting and parsing of that canonical form.
*/
package nodeid
