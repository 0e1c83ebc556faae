// Package directive parses the //prefs: comment directives attached to
// settings interfaces and their methods, and the optional YAML overrides
// file that can replace them.
//
// Interface directives:
//
//	//prefs:store name=app mode=private
//	//prefs:cache size=auto onput=evict
//
// Method directives:
//
//	//prefs:default 42
//	//prefs:cache onput=update
//
// A //prefs:store directive without name= selects the default store.
package directive
