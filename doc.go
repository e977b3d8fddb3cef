// Package brickmos turns images into brick mosaics. The image is scaled down
// to the size of the mosaic (one pixel per brick), each pixel is replaced by
// the closest color of a palette of brick colors and the number of bricks per
// color is exported as a BrickLink wanted list.
//
// The default palette contains the BrickLink colors of plate 1x1, palettes can
// also be read from files of the form
//
//	rgb;Bricklink Color Name;Bricklink Color ID;Bricklink Part ID
//	255,255,255;White;1;3024
//
// It ships with an executable program that writes the mosaic and the wanted
// list to a directory and serves a preview in the browser.
package brickmos
