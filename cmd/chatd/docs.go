package main

// General API documentation for swaggo. Build with -tags=swagger to serve it.
//
// @title           chatd API
// @version         1.0
// @description     HTTP API for local chat completion over a single GGUF model.
//
// @BasePath  /
//
// @schemes http
