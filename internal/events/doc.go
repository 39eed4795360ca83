// Package events publishes record changes to in-process handlers.
//
// The record service emits a ChangeEvent after every successful write;
// handlers such as the audit logger subscribe through an Emitter without the
// service knowing about them.
package events
