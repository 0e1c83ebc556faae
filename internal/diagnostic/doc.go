// Package diagnostic provides structured errors and warnings raised while
// generating settings implementations.
//
// Every diagnostic carries a code, a message and the most specific location
// known: the method, else the interface. A diagnostic never aborts a run;
// sibling interfaces are generated regardless.
package diagnostic
