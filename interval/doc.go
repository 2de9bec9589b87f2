/*Package interval parses the genomic intervals handed to coverage tools:
  region strings given on the command line or in a request, and BED files
  listing sub-regions of interest.
  It assumes every position fits in a PosType, which is currently defined as
  int32 since that's what BAM files are limited to.
*/
package interval
