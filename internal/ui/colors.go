package ui

// Color accessors return the escape sequence of the active theme for each
// semantic role. They return empty strings under NoColorTheme.

// ColorReset returns the escape code clearing all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the informational color.
func ColorBlue() string { return GetCurrentTheme().Info }

// ColorCyan returns the primary accent color.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorDim returns the secondary color.
func ColorDim() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorProvider exposes the active theme to packages that only need a few
// colors, such as apperrors.HandleOrchestrationError.
type ColorProvider struct{}

// Red returns the error color.
func (ColorProvider) Red() string { return ColorRed() }

// Yellow returns the warning color.
func (ColorProvider) Yellow() string { return ColorYellow() }

// Green returns the success color.
func (ColorProvider) Green() string { return ColorGreen() }

// Reset returns the reset escape code.
func (ColorProvider) Reset() string { return ColorReset() }
