package diag

// en builds a single-language template map.
func en(s string) map[string]string {
	return map[string]string{"en": s}
}

// catalog lists every note the analyzer can emit, in code order.
var catalog = []Definition{
	{
		Code: URITooLong, Category: CatGeneral, Severity: SevBad,
		Summary: en("The URI is very long (%(uri_len)s characters)."),
		Text: en("Long URIs aren't supported by some implementations, including proxies. " +
			"A reasonable upper size limit is 8192 characters."),
	},
	{
		Code: URIBadSyntax, Category: CatGeneral, Severity: SevBad,
		Summary: en("The URI's syntax isn't valid."),
		Text: en("This URI doesn't validate successfully. Look for illegal characters " +
			"and other problems; see <a href='http://www.ietf.org/rfc/rfc3986.txt'>RFC3986</a> for more information."),
	},
	{
		Code: FieldNameBadSyntax, Category: CatGeneral, Severity: SevBad,
		Summary: en(`"%(field_name)s" is not a valid header field-name.`),
		Text: en("Header field names are limited to the TOKEN production in HTTP; i.e., " +
			"they can't contain parenthesis, angle brackes (&lt;&gt;), ampersands (@), " +
			"commas, semicolons, colons, backslashes (\\), forward slashes (/), quotes, " +
			"square brackets ([]), question marks, equals signs (=), curly brackets ({}) " +
			"spaces or tabs."),
	},
	{
		Code: HeaderBlockTooLarge, Category: CatGeneral, Severity: SevBad,
		Summary: en("The response headers are very large (%(header_block_size)s)."),
		Text: en("Some implementations have limits on the total size of headers " +
			"that they'll accept. For example, Squid's default configuration limits " +
			"header blocks to 20k."),
	},
	{
		Code: HeaderTooLarge, Category: CatGeneral, Severity: SevBad,
		Summary: en("The %(header_name)s header is very large (%(header_size)s)."),
		Text:    en("Some implementations limit the size of any single header line."),
	},
	{
		Code: SingleHeaderRepeat, Category: CatGeneral, Severity: SevBad,
		Summary: en("Only one %(field_name)s header is allowed in a response."),
		Text: en("This header is designed to only occur once in a message. When it " +
			"occurs more than once, a receiver needs to choose the one to use, which " +
			"can lead to interoperability problems, since different implementations may " +
			"choose different instances to use."),
	},
	{
		Code: BadSyntax, Category: CatGeneral, Severity: SevBad,
		Summary: en("The %(field_name)s header's syntax isn't valid."),
		Text: en("The value for this header doesn't conform to that specified for it; see " +
			"its definition for more information."),
	},
	{
		Code: BodyExtra, Category: CatGeneral, Severity: SevBad,
		Summary: en("The body sent on the wire is longer than it should be."),
		Text:    en(""),
	},
	{
		Code: CMD5Correct, Category: CatGeneral, Severity: SevGood,
		Summary: en("The Content-MD5 header is correct."),
		Text: en("<code>Content-MD5</code> is a hash of the body, and can be used to ensure integrity " +
			"of the response. RED has checked its value and found it to be correct."),
	},
	{
		Code: CMD5Incorrect, Category: CatGeneral, Severity: SevBad,
		Summary: en("The Content-MD5 header is incorrect."),
		Text: en("<code>Content-MD5</code> is a hash of the body, and can be used to ensure integrity " +
			"of the response. RED has checked its value and found it to be incorrect; i.e., " +
			"the given <code>Content-MD5</code> does not match the body's value."),
	},
	{
		Code: ConnegGzip, Category: CatGeneral, Severity: SevInfo,
		Summary: en("The resource supports content negotiation for gzip compression."),
		Text: en("HTTP supports compression of responses by negotiating for <code>Content-Encoding</code>. " +
			"When RED asked for a compressed response, the resource provided one."),
	},
	{
		Code: ConnegNoGzip, Category: CatGeneral, Severity: SevInfo,
		Summary: en("The resource does not support content negotiation for gzip compression."),
		Text: en("HTTP supports compression of responses by negotiating for <code>Content-Encoding</code>. " +
			"When RED asked for a compressed response, the resource did not provide one."),
	},
	{
		Code: ConnegGzipWithoutAsking, Category: CatGeneral, Severity: SevBad,
		Summary: en("The resource sent a gzip-compressed representation when it wasn't asked for."),
		Text: en("HTTP supports compression of responses by negotiating for <code>Content-Encoding</code>. " +
			"Even though RED didn't ask for a compressed response, the resource provided one anyway. " +
			"Doing so can break clients that aren't expecting a compressed response."),
	},
	{
		Code: BadDateSyntax, Category: CatGeneral, Severity: SevBad,
		Summary: en("The %(field_name)s header's value isn't a valid date."),
		Text: en("HTTP dates have very specific syntax, and sending an invalid date can " +
			"cause a number of problems, especially around caching. Common problems include " +
			`sending "1 May" instead of "01 May" (the month is a fixed-width field), and sending ` +
			`a date in a timezone other than GMT. See <a href="">the HTTP specification</a> for ` +
			"more information."),
	},
	{
		Code: DateCorrect, Category: CatGeneral, Severity: SevGood,
		Summary: en("The server's clock is correct."),
		Text: en("HTTP's caching model assumes reasonable synchronisation between clocks on the " +
			"server and client; using RED's local clock, the server's clock appears to be well-synchronised."),
	},
	{
		Code: MIMEVersion, Category: CatGeneral, Severity: SevInfo,
		Summary: en("The MIME-Version header generally isn't necessary in HTTP."),
		Text: en("<code>MIME_Version</code> is a MIME header, not a HTTP header; it's only used when " +
			"HTTP messages are moved over MIME-based protocols (e.g., SMTP), which is uncommon."),
	},
	{
		Code: PragmaOther, Category: CatGeneral, Severity: SevBad,
		Summary: en("Pragma only defines the 'no-cache' request directive, and is deprecated for other uses."),
		Text: en("<code>Pragma</code> is a very old request header that is sometimes used as a response header, " +
			"even though this is not specified behaviour."),
	},
	{
		Code: ETagDoesntChange, Category: CatGeneral, Severity: SevBad,
		Summary: en("The ETag doesn't change between representations."),
		Text: en("HTTP requires that the <code>ETag</code>s for two different responses associated with the same URI be " +
			"different as well, to help caches and other receivers disambiguate them. This resource, however, sent the same " +
			"ETag for both the compressed and uncompressed versions of it (negotiated by <code>Accept-Encoding</code>. This can " +
			"cause interoperability problems, especially with caches."),
	},
	{
		Code: ViaPresent, Category: CatGeneral, Severity: SevInfo,
		Summary: en("An intermediary ('%(via_string)s') is present."),
		Text: en("The <code>Via</code> header indicates that an intermediary is present between RED and the origin server " +
			"for the resource."),
	},

	{
		Code: AgeNotInt, Category: CatCaching, Severity: SevBad,
		Summary: en("The Age header's value should be an integer."),
		Text: en("The <code>Age</code> header indicates the age of the response; i.e., how long it " +
			"has been cached since it was generated. The value given was not an integer, so " +
			"it is not a valid age."),
	},
	{
		Code: AgeNegative, Category: CatCaching, Severity: SevBad,
		Summary: en("The Age headers' value must be a positive integer."),
		Text: en("The <code>Age</code> header indicates the age of the response; i.e., how long it " +
			"has been cached since it was generated. The value given was negative, so " +
			"it is not a valid age."),
	},
	{
		Code: AgePresent, Category: CatCaching, Severity: SevInfo,
		Summary: en("It already been cached for %(age)s."),
		Text: en("The <code>Age</code> header indicates the age of the response; i.e., how long it " +
			"has been cached since it was generated."),
	},
	{
		Code: DateIncorrect, Category: CatCaching, Severity: SevBad,
		Summary: en("The server's clock is %(clock_skew_string)s."),
		Text: en("HTTP's caching model assumes reasonable synchronisation between clocks on the " +
			"server and client; using RED's local clock, the server's clock does not appear to be well-synchronised. " +
			"Problems can include responses that should be cacheable not being cacheable (especially if their freshness " +
			"lifetime is short)."),
	},
	{
		Code: INM304, Category: CatCaching, Severity: SevGood,
		Summary: en("The resource supports If-None-Match conditional requests."),
		Text: en(inmPreamble + "RED has done this and found that " +
			"the resource sends a <code>304 Not Modified</code> response, indicating that it supports <code>ETag</code> validation."),
	},
	{
		Code: INMFull, Category: CatCaching, Severity: SevBad,
		Summary: en("An If-None-Match conditional request returned the full content unchanged, rather than a 304 Not Modified response."),
		Text: en(inmPreamble + "RED has done this and found that " +
			"the resource sends a full response even though it hadn't changed, indicating that it doesn't support <code>ETag</code> validation."),
	},
	{
		Code: INMUnknown, Category: CatCaching, Severity: SevInfo,
		Summary: en("An If-None-Match conditional request returned the full content, but it had changed."),
		Text: en(inmPreamble + "RED has done this, but the response " +
			"changed between the original request and the validating request, so RED can't tell whether or not <code>ETag</code> validation is supported."),
	},
	{
		Code: INMStatus, Category: CatCaching, Severity: SevInfo,
		Summary: en("An If-None-Match conditional request returned a %(inm_status)s status."),
		Text: en(inmPreamble + "RED has done this, but the response " +
			"had a %(inm_status)s status code, so RED can't tell whether or not <code>ETag</code> validation is supported."),
	},
	{
		Code: LMFuture, Category: CatCaching, Severity: SevBad,
		Summary: en("The Last-Modified time is in the future."),
		Text: en("The <code>Last-Modified</code> header indicates the last point in time that the resource has changed. This response's <code>Last-Modified</code> time " +
			"is in the future, which doesn't have any defined meaning in HTTP."),
	},
	{
		Code: LMPresent, Category: CatCaching, Severity: SevInfo,
		Summary: en("The resource last changed %(last_modified_string)s."),
		Text: en("The <code>Last-Modified</code> header indicates the last point in time that the resource has changed. It is used in HTTP for validating cached " +
			"responses, and for calculating heuristic freshness in caches."),
	},
	{
		Code: IMS304, Category: CatCaching, Severity: SevGood,
		Summary: en("The resource supports If-Modified-Since conditional requests."),
		Text: en(imsPreamble + "RED has done this and found that " +
			"the resource sends a <code>304 Not Modified</code> response, indicating that it supports <code>Last-Modified</code> validation."),
	},
	{
		Code: IMSFull, Category: CatCaching, Severity: SevBad,
		Summary: en("An If-Modified-Since conditional request returned the full content unchanged, rather than a 304 response."),
		Text: en(imsPreamble + "RED has done this and found that " +
			"the resource sends a full response even though it hadn't changed, indicating that it doesn't support <code>Last-Modified</code> validation."),
	},
	{
		Code: IMSUnknown, Category: CatCaching, Severity: SevInfo,
		Summary: en("An If-Modified-Since conditional request returned the full content, but it had changed."),
		Text: en(imsPreamble + "RED has done this, but the response " +
			"changed between the original request and the validating request, so RED can't tell whether or not <code>Last-Modified</code> validation is supported."),
	},
	{
		Code: IMSStatus, Category: CatCaching, Severity: SevInfo,
		Summary: en("An If-Modified-Since conditional request returned a %(ims_status)s status."),
		Text: en(imsPreamble + "RED has done this, but the response " +
			"had a %(ims_status)s status code, so RED can't tell whether or not <code>Last-Modified</code> validation is supported."),
	},
	{
		Code: PragmaNoCache, Category: CatCaching, Severity: SevBad,
		Summary: en("Pragma: no-cache is a request directive, not a response directive."),
		Text: en("<code>Pragma</code> is a very old request header that is sometimes used as a response header, " +
			"even though this is not specified behaviour. <code>Cache-Control: no-cache</code> is more appropriate."),
	},
	{
		Code: VaryAsterisk, Category: CatCaching, Severity: SevBad,
		Summary: en("Vary: * effectively makes responses for this URI uncacheable."),
		Text: en("<code>Vary *</code> indicates that responses for this resource vary by some aspect that " +
			"can't (or won't) be described by the server. This makes the response effectively uncacheable."),
	},
	{
		Code: VaryUserAgent, Category: CatCaching, Severity: SevBad,
		Summary: en("Vary: User-Agent is bad practice."),
		Text:    en(""),
	},
	{
		Code: VaryInconsistent, Category: CatCaching, Severity: SevBad,
		Summary: en("The resource doesn't send Vary consistently."),
		Text: en("HTTP requires that the <code>Vary</code> response header be sent consistently for all responses if they " +
			"change based upon different aspects of the request. This resource has both compressed and uncompressed " +
			"variants available, negotiated by the <code>Accept-Encoding</code> request header, but it sends different " +
			"Vary headers for each; '%(conneg_vary)s' when the response is compressed, and '%(no_conneg_vary)s' when it is " +
			"not. This can cause problems for downstream caches, because they cannot consistently determine what the cache " +
			"key for a given URI is."),
	},
	{
		Code: CurrentAge, Category: CatCaching, Severity: SevInfo,
		Summary: en("The response is %(current_age)s old."),
		Text:    en(""),
	},
	{
		Code: FreshnessLifetime, Category: CatCaching, Severity: SevInfo,
		Summary: en("The response is fresh until %(freshness_lifetime)s."),
		Text:    en(""),
	},

	{
		Code: CLCorrect, Category: CatConnection, Severity: SevGood,
		Summary: en("The Content-Length header is correct."),
		Text: en("<code>Content-Length</code> is used by HTTP to delimit messages; that is, to mark " +
			"the end of one message and the beginning of the next. RED has checked the length " +
			"of the body and found the <code>Content-Length</code> to be correct."),
	},
	{
		Code: CLIncorrect, Category: CatConnection, Severity: SevBad,
		Summary: en("The Content-Length header is incorrect (actual body size: %(body_length)s)."),
		Text: en("<code>Content-Length</code> is used by HTTP to delimit messages; that is, to mark " +
			"the end of one message and the beginning of the next. RED has checked the length " +
			"of the body and found the <code>Content-Length</code> is not correct. This can cause problems " +
			"not only with connection handling, but also caching, since an incomplete response " +
			"is considered uncacheable."),
	},

	{
		Code: RangeCorrect, Category: CatTests, Severity: SevGood,
		Summary: en("A ranged request returned the correct partial content."),
		Text: en(rangePreamble + "RED has tested " +
			"this by requesting part of the response, which was returned correctly."),
	},
	{
		Code: RangeIncorrect, Category: CatTests, Severity: SevBad,
		Summary: en("A ranged request returned partial content, but it was incorrect."),
		Text: en(rangePreamble + "RED has tested " +
			"this by requesting part of the response, but the partial response doesn't correspond " +
			"with the full response retrieved at the same time. This could indicate that the " +
			"range implementation isn't working properly."),
	},
	{
		Code: RangeFull, Category: CatTests, Severity: SevBad,
		Summary: en("A ranged request returned the full content, rather than partial content."),
		Text: en(rangePreamble + "RED has tested " +
			"this by requesting part of the response, but the entire response was returned. " +
			"In other words, although the resource advertises support for partial content, it " +
			"doesn't appear to actually do so."),
	},
	{
		Code: RangeStatus, Category: CatTests, Severity: SevInfo,
		Summary: en("A ranged request returned a %(range_status)s status."),
		Text: en("This resource advertises support for ranged requests; that is, it allows " +
			"clients to specify that only part of the response should be sent. RED has tested " +
			"this by requesting part of the response, the response had a %(range_status)s " +
			"response code, which RED was not expecting."),
	},
}

const (
	inmPreamble = "HTTP allows clients to make conditional requests to see if a copy that they hold is still valid. Since this response " +
		"has an <code>ETag</code>, clients should be able to use an <code>If-None-Match</code> request header for validation. "
	imsPreamble = "HTTP allows clients to make conditional requests to see if a copy that they hold is still valid. Since this response " +
		"has a <code>Last-Modified</code> header, clients should be able to use an <code>If-Modified-Since</code> request header for validation. "
	rangePreamble = "This resource advertises support for ranged requests with <code>Accept-Ranges</code>; that is, it allows " +
		"clients to specify that only part of the response should be sent. "
)
