package ui

import _ "embed"

// Static pages served by the handlers. Kept as plain HTML with inline
// scripts; there is no frontend build step.

//go:embed pages/index.html
var IndexPage string

//go:embed pages/register.html
var RegisterPage string

//go:embed pages/login.html
var LoginPage string

//go:embed pages/dashboard.html
var DashboardPage string
