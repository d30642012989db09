package lcdtext

// Paragraphs is the sample text drawn by RenderFrame. Even entries are
// drawn upright, odd entries italic.
var Paragraphs = [...]string{
	"A single pixel on a color LCD is made of three colored elements \n" +
		"ordered (on various displays) either as blue, green, and red (BGR), \n" +
		"or as red, green, and blue (RGB). These pixel components, sometimes \n" +
		"called sub-pixels, appear as a single color to the human eye because \n" +
		"of blurring by the optics and spatial integration by nerve cells in the eye.",

	"The components are easily visible, however, when viewed with \n" +
		"a small magnifying glass, such as a loupe. Over a certain resolution \n" +
		"range the colors in the sub-pixels are not visible, but the relative \n" +
		"intensity of the components shifts the apparent position or orientation \n" +
		"of a line. Methods that take this interaction between the display \n" +
		"technology and the human visual system into account are called \n" +
		"subpixel rendering algorithms.",

	"The resolution at which colored sub-pixels go unnoticed differs, \n" +
		"however, with each user some users are distracted by the colored \n" +
		"\"fringes\" resulting from sub-pixel rendering. Subpixel rendering \n" +
		"is better suited to some display technologies than others. The \n" +
		"technology is well-suited to LCDs, but less so for CRTs. In a CRT \n" +
		"the light from the pixel components often spread across pixels, \n" +
		"and the outputs of adjacent pixels are not perfectly independent.",

	"If a designer knew precisely a great deal about the display's \n" +
		"electron beams and aperture grille, subpixel rendering might \n" +
		"have some advantage. But the properties of the CRT components, \n" +
		"coupled with the alignment variations that are part of the \n" +
		"production process, make subpixel rendering less effective for \n" +
		"these displays. The technique should have good application to \n" +
		"organic light emitting diodes and other display technologies.",
}
