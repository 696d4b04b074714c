// Package logger records interpreter events, such as lines read and
// background jobs started, as newline delimited JSON.
package logger
