// Package events intercepts the auxiliary mouse buttons and replaces them with
// synthetic navigation swipes. On darwin it talks to the Quartz event tap
// (Accessibility and Input Monitoring approval required); elsewhere only the
// in-process Loopback platform can drive the engine.
package events
