package compositor

// imaging registers PNG, JPEG, GIF, BMP and TIFF; WebP uploads need x/image.
import _ "golang.org/x/image/webp"
