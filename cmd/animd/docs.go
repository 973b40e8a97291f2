package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           animd API
// @version         1.0
// @description     HTTP API for scheduling map marker animations.
//
// @contact.name   animd maintainers
// @contact.url    https://github.com/your-org/animd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
