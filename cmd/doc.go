// Package cmd contains the command-line utilities of spamsvm: train fits and evaluates a model,
// smoke runs a handful of known messages through saved artifacts, classify is an interactive
// prompt and serve exposes the classifier over HTTP. It also contains code shared by these
// utilities, such as loading configuration and reporting fatal errors.
package cmd
