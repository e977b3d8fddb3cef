// Copyright 2019 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package brickmos

// DefaultPaletteCSV is the palette used if no palette file is given.
// It contains the BrickLink colors available for plate 1x1 (part 3024),
// see https://www.bricklink.com/catalogColors.asp for more colors.
const DefaultPaletteCSV = `rgb;Bricklink Color Name;Bricklink Color ID;Bricklink Part ID
255,255,255;White;1;3024
175,181,199;LightBluishGray;86;3024
89,93,96;DarkBluishGray;85;3024
33,33,33;Black;11;3024
106,14,21;DarkRed;59;3024
179,0,6;Red;5;3024
88,42,18;ReddishBrown;88;3024
222,198,156;Tan;2;3024
144,116,80;DarkTan;69;3024
227,160,91;MediumNougat;150;3024
179,84,8;DarkOrange;68;3024
255,126,20;Orange;4;3024
247,186,48;BrightLightOrange;110;3024
247,209,23;Yellow;3;3024
241,225,103;BrightLightYellow;103;3024
223,238,165;YellowishGreen;158;3024
166,202,85;Lime;34;3024
127,143,86;OliveGreen;155;3024
46,85,67;DarkGreen;80;3024
0,100,46;Green;6;3024
16,203,49;BrightGreen;36;3024
0,138,128;DarkTurquoise;39;3024
20,48,68;DarkBlue;63;3024
0,87,166;Blue;7;3024
73,151,250;DarkAzure;153;3024
95,189,247;MediumAzure;156;3024
97,175,255;MediumBlue;42;3024
164,194,230;BrightLightBlue;105;3024
90,113,132;SandBlue;55;3024
95,38,131;DarkPurple;89;3024
136,94,158;MediumLavender;157;3024
200,112,128;DarkPink;47;3024
255,187,255;BrightPink;104;3024
`

// DefaultPalette returns the parsed DefaultPaletteCSV. Each call returns a new
// slice.
func DefaultPalette() Palette {
	palette, err := ParsePaletteString(DefaultPaletteCSV)
	if err != nil {
		// DefaultPaletteCSV is malformed
		panic(err)
	}
	return palette
}
